package ops

import (
	"context"
	"sort"

	"dynalist/internal/api"
	"dynalist/internal/config"
	"dynalist/internal/errors"
)

// ChangesInput contains parameters for the Changes operation.
type ChangesInput struct {
	Dir string
}

// Change describes one document's drift between the recorded project state
// and the remote folder.
type Change struct {
	ID         string `json:"id"`
	LocalPath  string `json:"local_path,omitempty"`
	RemotePath string `json:"remote_path,omitempty"`

	// Replaces marks a remote document whose path collides with a
	// differently-IDed document in the recorded state: pulling it would
	// replace an existing file.
	Replaces bool `json:"replaces,omitempty"`
}

// ChangesOutput buckets project documents by how they drifted. Each bucket
// is ordered by path.
type ChangesOutput struct {
	New       []Change `json:"new,omitempty"`       // found only on remote
	Deleted   []Change `json:"deleted,omitempty"`   // found only in recorded state
	Modified  []Change `json:"modified,omitempty"`  // remote version is newer
	Outdated  []Change `json:"outdated,omitempty"`  // recorded version is newer
	Unchanged []Change `json:"unchanged,omitempty"` // same version
}

// Changes compares the version map recorded in the project settings against
// the remote folder. It reads the settings but never writes them.
func Changes(ctx context.Context, c api.Client, in ChangesInput) (*ChangesOutput, error) {
	settings, err := config.Load(in.Dir)
	if err != nil {
		return nil, err
	}
	if settings.Root == "" {
		return nil, errors.NewInvalidSettings(config.SettingsPath(in.Dir) + ": missing root")
	}

	remote, err := fetchRemoteStatus(ctx, c, settings.Root)
	if err != nil {
		return nil, err
	}
	sort.Slice(remote, func(i, j int) bool { return remote[i].Path < remote[j].Path })

	remoteByID := make(map[string]remoteDoc, len(remote))
	for _, r := range remote {
		remoteByID[r.ID] = r
	}

	// Remote documents whose path is already occupied by a different local
	// document would replace that file on update.
	replaces := map[string]bool{}
	for id, local := range settings.Status {
		for _, r := range remote {
			if r.Path == local.Path && r.ID != id {
				replaces[r.ID] = true
			}
		}
	}

	out := &ChangesOutput{}
	for _, r := range remote {
		local, ok := settings.Status[r.ID]
		ch := Change{ID: r.ID, LocalPath: local.Path, RemotePath: r.Path, Replaces: replaces[r.ID]}
		switch {
		case !ok:
			out.New = append(out.New, ch)
		case local.Version > r.Version:
			out.Outdated = append(out.Outdated, ch)
		case local.Version < r.Version:
			out.Modified = append(out.Modified, ch)
		default:
			out.Unchanged = append(out.Unchanged, ch)
		}
	}

	var deleted []Change
	for id, local := range settings.Status {
		if _, ok := remoteByID[id]; !ok {
			deleted = append(deleted, Change{ID: id, LocalPath: local.Path})
		}
	}
	sort.Slice(deleted, func(i, j int) bool { return deleted[i].LocalPath < deleted[j].LocalPath })
	out.Deleted = deleted

	return out, nil
}
