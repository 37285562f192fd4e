package section

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeFiles creates each named file with the given content under dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestOpen_Namespace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "retsinformationdk")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s, err := Open(dir + string(filepath.Separator))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Namespace() != "retsinformationdk" {
		t.Errorf("Namespace() = %q, want %q", s.Namespace(), "retsinformationdk")
	}
	if got, want := s.MetaFileName(), "retsinformationdk.jsonl"; got != want {
		t.Errorf("MetaFileName() = %q, want %q", got, want)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestOpen_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"file": "x"})

	_, err := Open(filepath.Join(dir, "file"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestContentFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ns")
	if err := os.MkdirAll(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFiles(t, dir, map[string]string{
		"ns_2":     "b",
		"ns_1":     "a",
		"ns.jsonl": "",
		"LICENSE":  "CC0",
		"notes.md": "",
		".hidden":  "",
	})

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	got, err := s.ContentFiles()
	if err != nil {
		t.Fatalf("ContentFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ns_1", "ns_2"}, got); diff != "" {
		t.Errorf("ContentFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadata_ReadOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ns")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFiles(t, dir, map[string]string{"ns.jsonl": "{\"doc_id\":\"ns_1\"}\n"})

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}

	// Removing the file must not affect the memoized result.
	if err := os.Remove(s.MetaPath()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := s.Metadata()
	if err != nil {
		t.Fatalf("second Metadata call failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("records = %d then %d, want 1 and 1", len(first), len(second))
	}
}
