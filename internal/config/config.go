// Package config handles the .dynalist.json project settings file and API
// token resolution.
package config

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"dynalist/internal/errors"
)

const (
	// SettingsFile binds a local directory to a remote folder.
	SettingsFile = ".dynalist.json"

	// TokenFile holds the API token as its first line.
	TokenFile = ".dynalistrc"

	// TokenEnv is the environment variable consulted for the API token.
	TokenEnv = "DYNALIST_TOKEN"
)

// DocStatus is the last-seen state of one project document.
type DocStatus struct {
	Path    string `json:"path"`
	Version int64  `json:"version"`
}

// Settings is the content of the project settings file. Root is the remote
// folder the directory is bound to; Status maps document IDs to the state
// recorded by the last successful update pass.
type Settings struct {
	Root      string               `json:"root"`
	Dest      string               `json:"dest,omitempty"`
	Token     string               `json:"token,omitempty"`
	Format    bool                 `json:"format,omitempty"`
	NodeState bool                 `json:"node_state,omitempty"`
	Status    map[string]DocStatus `json:"status,omitempty"`
}

// SettingsPath returns the settings file path for a project directory.
func SettingsPath(dir string) string {
	return filepath.Join(dir, SettingsFile)
}

// Load reads the settings file in dir. A missing file is a NO_PROJECT
// error; unparseable content is INVALID_SETTINGS.
func Load(dir string) (*Settings, error) {
	path := SettingsPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNoProject(path)
		}
		return nil, errors.NewInternal(err)
	}

	s := &Settings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.NewInvalidSettings(path + ": " + err.Error())
	}
	return s, nil
}

// Save writes the settings file in dir as indented JSON.
func (s *Settings) Save(dir string) error {
	f, err := os.Create(SettingsPath(dir))
	if err != nil {
		return errors.NewInternal(err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		f.Close()
		return errors.NewInternal(err)
	}
	return f.Close()
}

// ResolveToken resolves the API token. Order: explicit flag value, the
// project settings file, the DYNALIST_TOKEN environment variable, then the
// first line of .dynalistrc in dir and in the home directory.
func ResolveToken(flag, dir string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if s, err := Load(dir); err == nil && s.Token != "" {
		return s.Token, nil
	}

	if token := os.Getenv(TokenEnv); token != "" {
		return token, nil
	}

	if token := readTokenFile(filepath.Join(dir, TokenFile)); token != "" {
		return token, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if token := readTokenFile(filepath.Join(home, TokenFile)); token != "" {
			return token, nil
		}
	}

	return "", errors.NewTokenNotFound()
}

// readTokenFile returns the trimmed first line of path, or "" if the file
// is absent or empty.
func readTokenFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
