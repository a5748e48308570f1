package location

import (
	"path/filepath"
	"testing"
)

func TestURL(t *testing.T) {
	if got := URL("mem://localhost/kb.txt"); got != "mem://localhost/kb.txt" {
		t.Fatalf("URL(mem) = %q", got)
	}
	if got := URL(""); got != "" {
		t.Fatalf("URL(empty) = %q", got)
	}
	got := URL("knowledge_base.txt")
	if !filepath.IsAbs(got) || filepath.Base(got) != "knowledge_base.txt" {
		t.Fatalf("URL(relative) = %q, want absolute path", got)
	}
}
