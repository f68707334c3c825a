package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dynalist/internal/errors"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := &Settings{
		Root:   "folder1",
		Dest:   "notes",
		Format: true,
		Status: map[string]DocStatus{
			"doc1": {Path: "Work/Notes", Version: 42},
		},
	}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Root != "folder1" || loaded.Dest != "notes" || !loaded.Format {
		t.Errorf("loaded = %+v", loaded)
	}
	if got := loaded.Status["doc1"]; got.Path != "Work/Notes" || got.Version != 42 {
		t.Errorf("Status[doc1] = %+v", got)
	}
}

func TestSave_IndentedJSON(t *testing.T) {
	dir := t.TempDir()

	s := &Settings{Root: "folder1"}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(SettingsPath(dir))
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"root\": \"folder1\"") {
		t.Errorf("settings not indented:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("settings missing trailing newline")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, errors.ErrNoProject) {
		t.Errorf("error = %v, want NO_PROJECT", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(SettingsPath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrInvalidSettings) {
		t.Errorf("error = %v, want INVALID_SETTINGS", err)
	}
}

func TestResolveToken_Order(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(TokenEnv, "")

	// Nothing configured yet.
	if _, err := ResolveToken("", dir); !errors.Is(err, errors.ErrTokenNotFound) {
		t.Errorf("error = %v, want TOKEN_NOT_FOUND", err)
	}

	// Home token file is the last resort.
	if err := os.WriteFile(filepath.Join(home, TokenFile), []byte("home-token\n"), 0o600); err != nil {
		t.Fatalf("write home token: %v", err)
	}
	if got, _ := ResolveToken("", dir); got != "home-token" {
		t.Errorf("token = %q, want %q", got, "home-token")
	}

	// Working-directory token file beats home.
	if err := os.WriteFile(filepath.Join(dir, TokenFile), []byte("dir-token\n"), 0o600); err != nil {
		t.Fatalf("write dir token: %v", err)
	}
	if got, _ := ResolveToken("", dir); got != "dir-token" {
		t.Errorf("token = %q, want %q", got, "dir-token")
	}

	// Environment beats token files.
	t.Setenv(TokenEnv, "env-token")
	if got, _ := ResolveToken("", dir); got != "env-token" {
		t.Errorf("token = %q, want %q", got, "env-token")
	}

	// Project settings beat the environment.
	s := &Settings{Root: "folder1", Token: "settings-token"}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got, _ := ResolveToken("", dir); got != "settings-token" {
		t.Errorf("token = %q, want %q", got, "settings-token")
	}

	// The flag beats everything.
	if got, _ := ResolveToken("flag-token", dir); got != "flag-token" {
		t.Errorf("token = %q, want %q", got, "flag-token")
	}
}
