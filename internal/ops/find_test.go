package ops

import (
	"context"
	"testing"

	"dynalist/internal/errors"
)

func TestFind_MatchesNames(t *testing.T) {
	out, err := Find(context.Background(), testClient(), FindInput{Pattern: "^Not"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(out.Items))
	}
	if out.Items[0].Path != "/Work/Notes" {
		t.Errorf("Items[0].Path = %q, want %q", out.Items[0].Path, "/Work/Notes")
	}
}

func TestFind_MatchesFolders(t *testing.T) {
	out, err := Find(context.Background(), testClient(), FindInput{Pattern: "Work"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Type != "folder" {
		t.Errorf("Items = %+v, want the Work folder", out.Items)
	}
}

func TestFind_IgnoreCase(t *testing.T) {
	out, err := Find(context.Background(), testClient(), FindInput{Pattern: "inbox"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(out.Items) != 0 {
		t.Errorf("case-sensitive match found %d items, want 0", len(out.Items))
	}

	out, err = Find(context.Background(), testClient(), FindInput{Pattern: "inbox", IgnoreCase: true})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(out.Items) != 1 {
		t.Errorf("case-insensitive match found %d items, want 1", len(out.Items))
	}
}

func TestFind_InvalidPattern(t *testing.T) {
	_, err := Find(context.Background(), testClient(), FindInput{Pattern: "("})
	if !errors.Is(err, errors.ErrUsage) {
		t.Errorf("error = %v, want USAGE", err)
	}
}
