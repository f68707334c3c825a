package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dynalist/internal/api"
)

// countingWaiter records how often an operation asked for pacing.
type countingWaiter struct {
	calls int
}

func (w *countingWaiter) Wait(_ context.Context) error {
	w.calls++
	return nil
}

// simpleDoc builds a one-node document.
func simpleDoc(title, content string) *api.Document {
	return &api.Document{
		Title: title,
		Nodes: []api.Node{
			{ID: "root", Content: title, Children: []string{"n1"}},
			{ID: "n1", Content: content},
		},
	}
}

// testClient mirrors a small account:
//
//	/
//	├─ Inbox            (docA, v1)
//	└─ Work/            (fold1)
//	   ├─ Notes         (docB, v5)
//	   └─ Plans         (docC, v9)
func testClient() *api.Fake {
	f := api.NewFake()
	f.Root = "root1"
	f.Files = []api.File{
		{ID: "root1", Title: "Untitled", Type: "folder", Children: []string{"docA", "fold1"}},
		{ID: "docA", Title: "Inbox", Type: "document"},
		{ID: "fold1", Title: "Work", Type: "folder", Children: []string{"docB", "docC"}},
		{ID: "docB", Title: "Notes", Type: "document"},
		{ID: "docC", Title: "Plans", Type: "document"},
	}
	f.Docs["docA"] = simpleDoc("Inbox", "buy milk")
	f.Docs["docB"] = simpleDoc("Notes", "standup at ten")
	f.Docs["docC"] = simpleDoc("Plans", "ship it")
	f.Versions = map[string]int64{"docA": 1, "docB": 5, "docC": 9}
	return f
}

// mustReadFile fails the test unless path exists, and returns its content.
func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// writeFile creates path (and parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
