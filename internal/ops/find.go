package ops

import (
	"context"
	"regexp"

	"dynalist/internal/api"
	"dynalist/internal/errors"
	"dynalist/internal/item"
)

// FindInput contains parameters for the Find operation.
type FindInput struct {
	Pattern    string
	IgnoreCase bool
	Sort       bool
}

// FindOutput contains the items whose names matched.
type FindOutput struct {
	Items []ItemRef `json:"items"`
}

// Find matches the pattern against item names across the whole account.
func Find(ctx context.Context, c api.Client, in FindInput) (*FindOutput, error) {
	pattern := in.Pattern
	if in.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.NewUsage("invalid pattern: " + err.Error())
	}

	root, err := fetchTree(ctx, c, "", in.Sort)
	if err != nil {
		return nil, err
	}

	out := &FindOutput{}
	item.Walk(root, func(it *item.Item) {
		name := it.Name()
		if it.Path == "/" {
			// The account root has no name of its own.
			name = ""
		}
		if re.MatchString(name) {
			out.Items = append(out.Items, ItemRef{ID: it.ID, Type: it.Type, Path: it.Path})
		}
	})
	return out, nil
}
