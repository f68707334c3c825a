package ops

import (
	"os"

	"dynalist/internal/config"
	"dynalist/internal/errors"
)

// InitInput contains parameters for the Init operation.
type InitInput struct {
	Dir  string
	Root string // remote folder ID to bind the directory to
	Dest string // optional destination directory for updates
}

// InitOutput names the settings file that was created.
type InitOutput struct {
	Path string `json:"path"`
}

// Init binds a local directory to a remote folder by creating its settings
// file. An already-bound directory is an error; the root binding is
// immutable once created.
func Init(in InitInput) (*InitOutput, error) {
	if in.Root == "" {
		return nil, errors.NewUsage("folder id required")
	}

	path := config.SettingsPath(in.Dir)
	if _, err := os.Stat(path); err == nil {
		return nil, errors.NewProjectExists(path)
	}

	settings := &config.Settings{Root: in.Root, Dest: in.Dest}
	if err := settings.Save(in.Dir); err != nil {
		return nil, err
	}
	return &InitOutput{Path: path}, nil
}
