package api

import (
	"context"

	"dynalist/internal/errors"
)

// Fake is an in-memory Client for unit tests.
type Fake struct {
	Root      string
	Files     []File
	Docs      map[string]*Document
	Versions  map[string]int64
	ReadOrder []string // document IDs in the order ReadDocument was called

	// Optional error injection, keyed by API method name.
	Fail map[string]error
}

// NewFake creates an empty fake client.
func NewFake() *Fake {
	return &Fake{
		Docs:     map[string]*Document{},
		Versions: map[string]int64{},
		Fail:     map[string]error{},
	}
}

// ListFiles implements Client.
func (f *Fake) ListFiles(_ context.Context) (*FileList, error) {
	if err := f.Fail["file/list"]; err != nil {
		return nil, err
	}
	files := make([]File, len(f.Files))
	copy(files, f.Files)
	return &FileList{RootFileID: f.Root, Files: files}, nil
}

// ReadDocument implements Client.
func (f *Fake) ReadDocument(_ context.Context, documentID string) (*Document, error) {
	if err := f.Fail["doc/read"]; err != nil {
		return nil, err
	}
	f.ReadOrder = append(f.ReadOrder, documentID)
	doc, ok := f.Docs[documentID]
	if !ok {
		return nil, errors.NewNotFound(documentID)
	}
	return doc, nil
}

// CheckForUpdates implements Client.
func (f *Fake) CheckForUpdates(_ context.Context, documentIDs []string) (map[string]int64, error) {
	if err := f.Fail["doc/check_for_updates"]; err != nil {
		return nil, err
	}
	versions := make(map[string]int64, len(documentIDs))
	for _, id := range documentIDs {
		if v, ok := f.Versions[id]; ok {
			versions[id] = v
		}
	}
	return versions, nil
}
