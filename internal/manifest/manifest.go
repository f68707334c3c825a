// Package manifest reads the tab-separated .dynalist file that maps remote
// document IDs to local paths for batch export.
package manifest

import (
	"bufio"
	"os"
	"strings"

	"dynalist/internal/errors"
)

// Filename is the manifest file name expected in the project directory.
const Filename = ".dynalist"

// Suffix is appended to every computed local path.
const Suffix = ".opml"

// Entry is one manifest line: a remote ID and its remote path.
type Entry struct {
	ID   string
	Path string
}

// Target is the local destination derived from an Entry.
type Target struct {
	ID        string `json:"id"`
	LocalPath string `json:"local_path"`
}

// Target computes the destination for the entry: the path with any leading
// slash stripped, suffixed with .opml.
func (e Entry) Target() Target {
	return Target{
		ID:        e.ID,
		LocalPath: strings.TrimPrefix(e.Path, "/") + Suffix,
	}
}

// Load reads the manifest at path. Each non-empty line must split on a tab
// into a non-empty id and path; anything else is a MALFORMED_MANIFEST error
// naming the line. A missing file is a MISSING_MANIFEST error.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingManifest(path)
		}
		return nil, errors.NewInternal(err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" {
			continue
		}
		id, rest, ok := strings.Cut(line, "\t")
		if !ok || id == "" || rest == "" {
			return nil, errors.NewMalformedManifest(path, lineno)
		}
		entries = append(entries, Entry{ID: id, Path: rest})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}
