package ops

import (
	"context"

	"dynalist/internal/api"
	"dynalist/internal/item"
)

// TreeInput contains parameters for the Tree operation.
type TreeInput struct {
	RootID string // empty means the account root
	Sort   bool
}

// TreeOutput carries the root of the fetched item tree.
type TreeOutput struct {
	Root *item.Item `json:"root"`
}

// Tree fetches the remote tree for hierarchical display.
func Tree(ctx context.Context, c api.Client, in TreeInput) (*TreeOutput, error) {
	root, err := fetchTree(ctx, c, in.RootID, in.Sort)
	if err != nil {
		return nil, err
	}
	return &TreeOutput{Root: root}, nil
}
