package ops

import (
	"context"
	"path/filepath"

	"dynalist/internal/api"
	"dynalist/internal/config"
	"dynalist/internal/errors"
	"dynalist/internal/ratelimit"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	Dir string

	// Pacer gates document reads; nil uses the doc/read quota defaults.
	Pacer ratelimit.Waiter
}

// UpdateOutput lists the files written by the pass.
type UpdateOutput struct {
	Written []string `json:"written"`
}

// Update mirrors the project's remote folder into its destination directory
// and records the fresh version map. The settings file is written only after
// the whole export pass succeeded.
func Update(ctx context.Context, c api.Client, in UpdateInput) (*UpdateOutput, error) {
	settings, err := config.Load(in.Dir)
	if err != nil {
		return nil, err
	}
	if settings.Root == "" {
		return nil, errors.NewInvalidSettings(config.SettingsPath(in.Dir) + ": missing root")
	}

	dest := settings.Dest
	if dest == "" {
		dest = in.Dir
	} else if !filepath.IsAbs(dest) {
		dest = filepath.Join(in.Dir, dest)
	}

	exported, err := Export(ctx, c, ExportInput{
		ID:         settings.Root,
		Dest:       dest,
		WithFormat: settings.Format,
		WithState:  settings.NodeState,
		Pacer:      in.Pacer,
	})
	if err != nil {
		return nil, err
	}

	remote, err := fetchRemoteStatus(ctx, c, settings.Root)
	if err != nil {
		return nil, err
	}
	status := make(map[string]config.DocStatus, len(remote))
	for _, r := range remote {
		status[r.ID] = config.DocStatus{Path: r.Path, Version: r.Version}
	}
	settings.Status = status

	if err := settings.Save(in.Dir); err != nil {
		return nil, err
	}
	return &UpdateOutput{Written: exported.Written}, nil
}
