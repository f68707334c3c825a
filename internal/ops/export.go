package ops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"dynalist/internal/api"
	"dynalist/internal/errors"
	"dynalist/internal/item"
	"dynalist/internal/opml"
	"dynalist/internal/ratelimit"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// ID of the document or folder to export.
	ID string

	// Dest is the destination file for a document or directory for a
	// folder. "-" streams a document to Out; empty defaults to
	// "<title>.opml" for a document and the current directory for a
	// folder. A document destination naming an existing directory writes
	// "<title>.opml" inside it.
	Dest string

	// Out receives the OPML when Dest is "-".
	Out io.Writer

	RootNode   bool
	WithFormat bool
	WithState  bool

	// Pacer gates document reads; nil uses the doc/read quota defaults.
	Pacer ratelimit.Waiter
}

// ExportOutput lists what was written.
type ExportOutput struct {
	Written []string `json:"written"`
}

// Export writes one document, or every document under a folder, as OPML.
func Export(ctx context.Context, c api.Client, in ExportInput) (*ExportOutput, error) {
	list, err := c.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	var target *api.File
	for i := range list.Files {
		if list.Files[i].ID == in.ID {
			target = &list.Files[i]
			break
		}
	}
	if target == nil {
		return nil, errors.NewNotFound(in.ID)
	}

	opts := opml.Options{
		RootNode:   in.RootNode,
		WithFormat: in.WithFormat,
		WithState:  in.WithState,
	}

	switch target.Type {
	case item.TypeDocument:
		return exportDocument(ctx, c, in, opts)
	case item.TypeFolder:
		return exportFolder(ctx, c, list, in, opts)
	default:
		return nil, errors.NewNotFound(in.ID)
	}
}

func exportDocument(ctx context.Context, c api.Client, in ExportInput, opts opml.Options) (*ExportOutput, error) {
	doc, err := c.ReadDocument(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Dest == "-" {
		if err := opml.Write(in.Out, doc, opts); err != nil {
			return nil, errors.NewInternal(err)
		}
		return &ExportOutput{Written: []string{"-"}}, nil
	}

	dest := in.Dest
	if dest == "" {
		dest = doc.Title + ".opml"
	} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, doc.Title+".opml")
	}
	if err := writeDocumentFile(dest, doc, opts); err != nil {
		return nil, err
	}
	return &ExportOutput{Written: []string{dest}}, nil
}

func exportFolder(ctx context.Context, c api.Client, list *api.FileList, in ExportInput, opts opml.Options) (*ExportOutput, error) {
	dest := in.Dest
	if dest == "" || dest == "-" {
		dest = "."
	}
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return nil, errors.NewUsage("not a directory: " + dest)
	} else if err != nil {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	root, err := item.Build(list, in.ID)
	if err != nil {
		return nil, err
	}
	if !root.IsFolder() {
		return nil, errors.NewNotAFolder(in.ID)
	}

	pacer := in.Pacer
	if pacer == nil {
		pacer = ratelimit.Default()
	}

	out := &ExportOutput{}
	for _, doc := range item.Documents(root) {
		if err := pacer.Wait(ctx); err != nil {
			return nil, errors.NewInternal(err)
		}
		content, err := c.ReadDocument(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dest, filepath.FromSlash(doc.Rel(root))+".opml")
		if err := writeDocumentFile(path, content, opts); err != nil {
			return nil, err
		}
		out.Written = append(out.Written, path)
	}
	return out, nil
}
