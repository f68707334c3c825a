package ops

import (
	"context"
	"testing"
)

func TestTree(t *testing.T) {
	out, err := Tree(context.Background(), testClient(), TreeInput{Sort: true})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	root := out.Root
	if root.Path != "/" || len(root.Children) != 2 {
		t.Fatalf("unexpected root: %+v", root)
	}
	if root.Children[0].Path != "/Inbox" || root.Children[1].Path != "/Work" {
		t.Errorf("unexpected children: %q, %q", root.Children[0].Path, root.Children[1].Path)
	}
	work := root.Children[1]
	if len(work.Children) != 2 || work.Children[0].Name() != "Notes" {
		t.Errorf("unexpected Work children: %+v", work.Children)
	}
}

func TestTreeScopedToDocument(t *testing.T) {
	out, err := Tree(context.Background(), testClient(), TreeInput{RootID: "docA"})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if out.Root.IsFolder() || out.Root.Name() != "Inbox" {
		t.Errorf("unexpected root: %+v", out.Root)
	}
}
