package ops

import (
	"context"

	"dynalist/internal/api"
	"dynalist/internal/item"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	RootID string // empty means the account root
	Sort   bool
}

// ListOutput contains every item under the root in depth-first order.
type ListOutput struct {
	Items []ItemRef `json:"items"`
}

// List fetches the remote tree and flattens it for display.
func List(ctx context.Context, c api.Client, in ListInput) (*ListOutput, error) {
	root, err := fetchTree(ctx, c, in.RootID, in.Sort)
	if err != nil {
		return nil, err
	}

	out := &ListOutput{}
	item.Walk(root, func(it *item.Item) {
		out.Items = append(out.Items, ItemRef{ID: it.ID, Type: it.Type, Path: it.Path})
	})
	return out, nil
}
