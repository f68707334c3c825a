package ops

import (
	"os"
	"path/filepath"

	"dynalist/internal/manifest"
)

// StatusInput contains parameters for the Status operation.
type StatusInput struct {
	Dir string
}

// StatusEntry is one manifest entry's prospective destination.
type StatusEntry struct {
	ID        string `json:"id"`
	LocalPath string `json:"local_path"`
	Exists    bool   `json:"exists"`
}

// StatusOutput reports every manifest entry exactly once, in file order.
type StatusOutput struct {
	Entries []StatusEntry `json:"entries"`
}

// Status computes each manifest entry's destination and whether a pull would
// overwrite an existing file there. It is a pure local check: no network, no
// writes.
func Status(in StatusInput) (*StatusOutput, error) {
	entries, err := manifest.Load(filepath.Join(in.Dir, manifest.Filename))
	if err != nil {
		return nil, err
	}

	out := &StatusOutput{}
	for _, e := range entries {
		target := e.Target()
		_, err := os.Stat(filepath.Join(in.Dir, filepath.FromSlash(target.LocalPath)))
		out.Entries = append(out.Entries, StatusEntry{
			ID:        target.ID,
			LocalPath: target.LocalPath,
			Exists:    err == nil,
		})
	}
	return out, nil
}
