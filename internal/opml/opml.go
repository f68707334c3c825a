// Package opml serializes a Dynalist document as OPML 2.0.
//
// The layout is fixed: tab indentation, a head naming the Dynalist flavor,
// and one outline element per node with attributes in a stable order so that
// exporting unchanged content twice produces byte-identical files.
package opml

import (
	"fmt"
	"io"
	"strings"

	"dynalist/internal/api"
)

// Options selects which node attributes are written.
type Options struct {
	// RootNode writes the document's root node itself instead of starting
	// at its children.
	RootNode bool

	// WithFormat includes checkbox, complete, colorLabel and listStyle
	// attributes.
	WithFormat bool

	// WithState includes the collapsed attribute.
	WithState bool
}

const (
	head = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<opml version=\"2.0\">\n" +
		"\t<head>\n" +
		"\t\t<title>%s</title>\n" +
		"\t\t<flavor>dynalist</flavor>\n" +
		"\t\t<source>https://dynalist.io</source>\n" +
		"\t</head>\n" +
		"\t<body>\n"

	tail = "\t</body>\n</opml>\n"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Write serializes doc to w.
func Write(w io.Writer, doc *api.Document, opts Options) error {
	table := make(map[string]api.Node, len(doc.Nodes))
	for _, n := range doc.Nodes {
		table[n.ID] = n
	}

	if _, err := fmt.Fprintf(w, head, escaper.Replace(doc.Title)); err != nil {
		return err
	}

	if opts.RootNode {
		if err := writeNode(w, "root", table, 2, opts); err != nil {
			return err
		}
	} else {
		root, ok := table["root"]
		if !ok {
			return fmt.Errorf("document has no root node")
		}
		for _, childID := range root.Children {
			if err := writeNode(w, childID, table, 2, opts); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, tail)
	return err
}

func writeNode(w io.Writer, id string, table map[string]api.Node, depth int, opts Options) error {
	node, ok := table[id]
	if !ok {
		return fmt.Errorf("invalid node id: %s", id)
	}

	parts := []string{"outline", `text="` + escaper.Replace(node.Content) + `"`}

	if node.Note != "" {
		parts = append(parts, `_note="`+escaper.Replace(node.Note)+`"`)
	}

	if opts.WithFormat {
		if node.Checkbox {
			parts = append(parts, `checkbox="true"`)
		}
		if node.Checked {
			parts = append(parts, `complete="true"`)
		}
		if node.Color != 0 {
			parts = append(parts, fmt.Sprintf(`colorLabel="%d"`, node.Color))
		}
		if node.Numbered {
			parts = append(parts, `listStyle="arabic"`)
		}
	}

	if opts.WithState && node.Collapsed {
		parts = append(parts, `collapsed="true"`)
	}

	indent := strings.Repeat("\t", depth)
	elem := strings.Join(parts, " ")

	if len(node.Children) == 0 {
		_, err := fmt.Fprintf(w, "%s<%s/>\n", indent, elem)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s<%s>\n", indent, elem); err != nil {
		return err
	}
	for _, childID := range node.Children {
		if err := writeNode(w, childID, table, depth+1, opts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</outline>\n", indent)
	return err
}
