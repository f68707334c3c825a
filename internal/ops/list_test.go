package ops

import (
	"context"
	"testing"

	"dynalist/internal/errors"
)

func TestList_AccountRoot(t *testing.T) {
	out, err := List(context.Background(), testClient(), ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"/", "/Inbox", "/Work", "/Work/Notes", "/Work/Plans"}
	if len(out.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(out.Items), len(want))
	}
	for i, path := range want {
		if out.Items[i].Path != path {
			t.Errorf("Items[%d].Path = %q, want %q", i, out.Items[i].Path, path)
		}
	}
}

func TestList_Subfolder(t *testing.T) {
	out, err := List(context.Background(), testClient(), ListInput{RootID: "fold1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"Work", "Work/Notes", "Work/Plans"}
	if len(out.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(out.Items), len(want))
	}
	for i, path := range want {
		if out.Items[i].Path != path {
			t.Errorf("Items[%d].Path = %q, want %q", i, out.Items[i].Path, path)
		}
	}
}

func TestList_Sorted(t *testing.T) {
	c := testClient()
	// Reverse the API order of the Work folder's children.
	c.Files[2].Children = []string{"docC", "docB"}

	out, err := List(context.Background(), c, ListInput{RootID: "fold1", Sort: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Items[1].Path != "Work/Notes" || out.Items[2].Path != "Work/Plans" {
		t.Errorf("sorted order wrong: %+v", out.Items)
	}
}

func TestList_UnknownRoot(t *testing.T) {
	_, err := List(context.Background(), testClient(), ListInput{RootID: "nope"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestList_APIError(t *testing.T) {
	c := testClient()
	c.Fail["file/list"] = errors.NewFetchFailed("file/list", "Invalid token")

	_, err := List(context.Background(), c, ListInput{})
	if !errors.Is(err, errors.ErrFetchFailed) {
		t.Errorf("error = %v, want FETCH_FAILED", err)
	}
}
