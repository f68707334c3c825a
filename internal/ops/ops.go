// Package ops implements the operations behind the CLI subcommands and MCP
// tools. Every operation takes a context, an API client where the network is
// involved, and a typed input; paths inside inputs are resolved against the
// invocation's project directory by the caller.
package ops

import (
	"context"
	"os"
	"path/filepath"

	"dynalist/internal/api"
	"dynalist/internal/errors"
	"dynalist/internal/item"
	"dynalist/internal/opml"
)

// ItemRef identifies one remote item in listing results.
type ItemRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// fetchTree fetches the file list and builds the tree rooted at rootID
// (account root when empty), optionally with children sorted by path.
func fetchTree(ctx context.Context, c api.Client, rootID string, sorted bool) (*item.Item, error) {
	list, err := c.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	root, err := item.Build(list, rootID)
	if err != nil {
		return nil, err
	}
	if sorted {
		item.SortChildren(root)
	}
	return root, nil
}

// remoteDoc is the current remote state of one project document.
type remoteDoc struct {
	ID      string
	Path    string // relative to the project root folder
	Version int64
}

// fetchRemoteStatus collects every document under rootID with its path
// relative to the root and its current version number, in depth-first order.
func fetchRemoteStatus(ctx context.Context, c api.Client, rootID string) ([]remoteDoc, error) {
	root, err := fetchTree(ctx, c, rootID, false)
	if err != nil {
		return nil, err
	}

	docs := item.Documents(root)
	if len(docs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	versions, err := c.CheckForUpdates(ctx, ids)
	if err != nil {
		return nil, err
	}

	status := make([]remoteDoc, len(docs))
	for i, d := range docs {
		status[i] = remoteDoc{ID: d.ID, Path: d.Rel(root), Version: versions[d.ID]}
	}
	return status, nil
}

// writeDocumentFile serializes doc to path, creating parent directories and
// truncating any existing file. Writes are not atomic: a failure can leave a
// partial file behind.
func writeDocumentFile(path string, doc *api.Document, opts opml.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewInternal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := opml.Write(f, doc, opts); err != nil {
		f.Close()
		return errors.NewInternal(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
