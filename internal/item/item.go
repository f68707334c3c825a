// Package item builds a path-annotated tree from the flat file list the
// Dynalist API returns.
package item

import (
	"path"
	"sort"
	"strings"

	"dynalist/internal/api"
	"dynalist/internal/errors"
)

// Item types as reported by the API.
const (
	TypeDocument = "document"
	TypeFolder   = "folder"
)

// Item is a document or folder with its slash-separated remote path.
type Item struct {
	ID       string
	Type     string
	Path     string
	Children []*Item
}

// Name returns the last path element of the item.
func (it *Item) Name() string {
	return path.Base(it.Path)
}

// IsFolder reports whether the item is a folder.
func (it *Item) IsFolder() bool {
	return it.Type == TypeFolder
}

// Rel returns the item's path relative to the given ancestor.
func (it *Item) Rel(ancestor *Item) string {
	if it.Path == ancestor.Path {
		return "."
	}
	prefix := ancestor.Path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.TrimPrefix(it.Path, prefix)
}

// Build assembles the tree rooted at rootID. An empty rootID starts at the
// account root, whose path renders as "/". Items referencing unknown IDs are
// a NOT_FOUND error; children of unexpected type are kept with their type
// intact so callers can decide how to report them.
func Build(list *api.FileList, rootID string) (*Item, error) {
	table := make(map[string]api.File, len(list.Files))
	for _, f := range list.Files {
		table[f.ID] = f
	}

	if root, ok := table[list.RootFileID]; ok {
		root.Title = "/"
		table[list.RootFileID] = root
	}

	if rootID == "" {
		rootID = list.RootFileID
	}
	return build(table, rootID, "")
}

func build(table map[string]api.File, id, parentPath string) (*Item, error) {
	f, ok := table[id]
	if !ok {
		return nil, errors.NewNotFound(id)
	}

	it := &Item{
		ID:   f.ID,
		Type: f.Type,
		Path: path.Join(parentPath, f.Title),
	}
	for _, childID := range f.Children {
		child, err := build(table, childID, it.Path)
		if err != nil {
			return nil, err
		}
		it.Children = append(it.Children, child)
	}
	return it, nil
}

// SortChildren orders every folder's children by path, recursively.
func SortChildren(it *Item) {
	sort.Slice(it.Children, func(i, j int) bool {
		return it.Children[i].Path < it.Children[j].Path
	})
	for _, child := range it.Children {
		SortChildren(child)
	}
}

// Walk visits the tree in depth-first pre-order.
func Walk(it *Item, fn func(*Item)) {
	fn(it)
	for _, child := range it.Children {
		Walk(child, fn)
	}
}

// Documents collects every document under it in depth-first order. Items of
// unknown type are ignored.
func Documents(it *Item) []*Item {
	var docs []*Item
	Walk(it, func(i *Item) {
		if i.Type == TypeDocument {
			docs = append(docs, i)
		}
	})
	return docs
}
