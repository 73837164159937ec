package payloads

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirSourceAvailable(t *testing.T) {
	dir := t.TempDir()
	src := NewDirSource(dir)
	if src.Available() {
		t.Fatal("empty directory has no payloads")
	}

	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if src.Available() {
		t.Fatal("subdirectories alone are not payloads")
	}

	if err := os.WriteFile(filepath.Join(dir, "xss.txt"), []byte("<script>\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !src.Available() {
		t.Fatal("expected payloads to be available")
	}
}

func TestDirSourceMissingOrUnset(t *testing.T) {
	if NewDirSource("").Available() {
		t.Fatal("unset directory should report unavailable")
	}
	if NewDirSource(filepath.Join(t.TempDir(), "missing")).Available() {
		t.Fatal("missing directory should report unavailable")
	}
}
