package ops

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"dynalist/internal/errors"
	"dynalist/internal/manifest"
)

func TestPull_FetchesEveryEntryInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, manifest.Filename),
		"docB\t/Work/Notes\ndocA\t/Inbox\n")

	c := testClient()
	out, err := Pull(context.Background(), c, PullInput{Dir: dir})
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	if len(out.Fetched) != 2 {
		t.Fatalf("len(Fetched) = %d, want 2", len(out.Fetched))
	}
	if out.Fetched[0].LocalPath != "Work/Notes.opml" || out.Fetched[1].LocalPath != "Inbox.opml" {
		t.Errorf("Fetched = %+v", out.Fetched)
	}

	// One fetch per line, in file order.
	if len(c.ReadOrder) != 2 || c.ReadOrder[0] != "docB" || c.ReadOrder[1] != "docA" {
		t.Errorf("ReadOrder = %v, want [docB docA]", c.ReadOrder)
	}

	notes := mustReadFile(t, filepath.Join(dir, "Work", "Notes.opml"))
	if !strings.Contains(notes, `<outline text="standup at ten"/>`) {
		t.Errorf("Notes.opml content wrong:\n%s", notes)
	}
	mustReadFile(t, filepath.Join(dir, "Inbox.opml"))
}

func TestPull_MissingManifest(t *testing.T) {
	c := testClient()

	_, err := Pull(context.Background(), c, PullInput{Dir: t.TempDir()})
	if !errors.Is(err, errors.ErrMissingManifest) {
		t.Fatalf("error = %v, want MISSING_MANIFEST", err)
	}
	if len(c.ReadOrder) != 0 {
		t.Errorf("fetches = %d, want 0", len(c.ReadOrder))
	}
}

func TestPull_MalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, manifest.Filename), "no-tab-here\n")

	c := testClient()
	_, err := Pull(context.Background(), c, PullInput{Dir: dir})
	if !errors.Is(err, errors.ErrMalformedManifest) {
		t.Fatalf("error = %v, want MALFORMED_MANIFEST", err)
	}
	if len(c.ReadOrder) != 0 {
		t.Errorf("fetches = %d, want 0", len(c.ReadOrder))
	}
}

func TestPull_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, manifest.Filename), "docA\t/Inbox\n")
	writeFile(t, filepath.Join(dir, "Inbox.opml"), "stale content")

	if _, err := Pull(context.Background(), testClient(), PullInput{Dir: dir}); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	content := mustReadFile(t, filepath.Join(dir, "Inbox.opml"))
	if strings.Contains(content, "stale") {
		t.Error("existing file was not overwritten")
	}
}

func TestPull_PacesEveryFetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, manifest.Filename), "docA\t/Inbox\ndocB\t/Notes\n")

	w := &countingWaiter{}
	if _, err := Pull(context.Background(), testClient(), PullInput{Dir: dir, Pacer: w}); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if w.calls != 2 {
		t.Errorf("pacer calls = %d, want 2", w.calls)
	}
}

func TestPull_FetchFailureStopsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, manifest.Filename), "docA\t/Inbox\nmissing\t/Gone\ndocB\t/Notes\n")

	c := testClient()
	_, err := Pull(context.Background(), c, PullInput{Dir: dir})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}

	// The file fetched before the failure stays on disk.
	mustReadFile(t, filepath.Join(dir, "Inbox.opml"))
	if len(c.ReadOrder) != 2 {
		t.Errorf("fetches = %d, want 2 (stop at failure)", len(c.ReadOrder))
	}
}
