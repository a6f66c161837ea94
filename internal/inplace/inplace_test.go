package inplace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func TestCommitReplacesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old\n", 0o640)

	tgt, err := NewTarget(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tgt.File.WriteString("new\n"); err != nil {
		t.Fatal(err)
	}
	if err := tgt.Commit(""); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Fatalf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v, want 0640", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestCommitWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old\n", 0o644)

	tgt, err := NewTarget(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tgt.File.WriteString("new\n"); err != nil {
		t.Fatal(err)
	}
	if err := tgt.Commit(".bak"); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "old\n" {
		t.Fatalf("backup content = %q", backup)
	}
	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(current) != "new\n" {
		t.Fatalf("content = %q", current)
	}
}

func TestCommitRefusesExistingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old\n", 0o644)
	writeFile(t, path+".bak", "precious\n", 0o644)

	tgt, err := NewTarget(path)
	if err != nil {
		t.Fatal(err)
	}
	err = tgt.Commit(".bak")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing-backup error, got %v", err)
	}
	// original must be untouched
	got, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(got) != "old\n" {
		t.Fatalf("original modified: %q", got)
	}
}

func TestDiscardRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old\n", 0o644)

	tgt, err := NewTarget(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tgt.Discard(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the original left, got %v", entries)
	}
	// second Discard is a no-op
	if err := tgt.Discard(); err != nil {
		t.Fatal(err)
	}
}
