package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		expect      []string
	}{
		{description: "empty", text: "", expect: nil},
		{description: "blank lines only", text: "\n  \n\t\n", expect: nil},
		{
			description: "drone facts",
			text:        "Drones use four rotors.\n\nQuadcopters have a maximum takeoff weight limit.",
			expect:      []string{"Drones use four rotors.", "Quadcopters have a maximum takeoff weight limit."},
		},
		{description: "crlf and padding", text: "  first \r\nsecond\r\n", expect: []string{"first", "second"}},
	}
	for _, testCase := range testCases {
		docs := Parse(testCase.text)
		if len(docs) != len(testCase.expect) {
			t.Fatalf("%s: got %d docs, want %d", testCase.description, len(docs), len(testCase.expect))
		}
		for i, doc := range docs {
			if doc.Position != i || doc.Text != testCase.expect[i] {
				t.Fatalf("%s: doc %d = %+v, want {%d %q}", testCase.description, i, doc, i, testCase.expect[i])
			}
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.txt")
	if err := os.WriteFile(path, []byte("Drones use four rotors.\n\nQuadcopters have a maximum takeoff weight limit.\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	collection, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if collection.Missing {
		t.Fatalf("expected source to exist")
	}
	if collection.Len() != 2 {
		t.Fatalf("Len = %d, want 2", collection.Len())
	}
	texts := collection.Texts()
	if texts[0] != "Drones use four rotors." {
		t.Fatalf("texts[0] = %q", texts[0])
	}
}

func TestLoad_Missing(t *testing.T) {
	collection, err := Load(context.Background(), nil, filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("Load of missing source returned error: %v", err)
	}
	if !collection.Missing || !collection.Empty() {
		t.Fatalf("collection = %+v, want missing and empty", collection)
	}
}

func TestCollection_NilSafe(t *testing.T) {
	var c *Collection
	if c.Len() != 0 || !c.Empty() {
		t.Fatalf("nil collection should be empty")
	}
}

// statFailingFS reports a storage error for every existence check.
type statFailingFS struct {
	afs.Service
	err error
}

func (f *statFailingFS) Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error) {
	return false, f.err
}

func TestLoad_StatFailure(t *testing.T) {
	denied := errors.New("permission denied")
	fs := &statFailingFS{Service: afs.New(), err: denied}
	collection, err := Load(context.Background(), fs, "s3://bucket/knowledge_base.txt")
	if !errors.Is(err, denied) {
		t.Fatalf("Load error = %v, want %v", err, denied)
	}
	if collection != nil {
		t.Fatalf("Load returned collection %+v on stat failure", collection)
	}
}
