package ops

import (
	"context"
	"path/filepath"

	"dynalist/internal/api"
	"dynalist/internal/manifest"
	"dynalist/internal/opml"
	"dynalist/internal/ratelimit"
)

// PullInput contains parameters for the Pull operation.
type PullInput struct {
	// Dir is the directory holding the .dynalist manifest; destinations are
	// resolved relative to it.
	Dir string

	// Pacer gates document reads; nil uses the doc/read quota defaults.
	Pacer ratelimit.Waiter
}

// PullOutput lists the targets fetched, in manifest order.
type PullOutput struct {
	Fetched []manifest.Target `json:"fetched"`
}

// Pull fetches every manifest entry to its computed destination, one fetch
// per line in file order. A failed fetch stops the run; already-written
// files are left in place.
func Pull(ctx context.Context, c api.Client, in PullInput) (*PullOutput, error) {
	entries, err := manifest.Load(filepath.Join(in.Dir, manifest.Filename))
	if err != nil {
		return nil, err
	}

	pacer := in.Pacer
	if pacer == nil {
		pacer = ratelimit.Default()
	}

	out := &PullOutput{}
	for _, e := range entries {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}
		target := e.Target()
		doc, err := c.ReadDocument(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(in.Dir, filepath.FromSlash(target.LocalPath))
		if err := writeDocumentFile(dest, doc, opml.Options{}); err != nil {
			return nil, err
		}
		out.Fetched = append(out.Fetched, target)
	}
	return out, nil
}
