package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lock := NewLockfile("demo", []LockedPackage{
		{Name: "strings", Source: "https://example.com/lox-strings.git", Revision: "abc123", Path: "/cache/strings"},
		{Name: "collections", Source: "https://example.com/lox-collections.git", Ref: "v2", Revision: "def456", Path: "/cache/collections"},
	})
	lock.Tool = "lox 0.1.0"

	if err := lock.Write(dir); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	loaded, err := LoadLockfile(filepath.Join(dir, LockfileName))
	if err != nil {
		t.Fatalf("LoadLockfile returned error: %v", err)
	}
	if diff := cmp.Diff(lock, loaded); diff != "" {
		t.Fatalf("lockfile mismatch (-want +got):\n%s", diff)
	}
}

func TestLockfilePackagesSorted(t *testing.T) {
	lock := NewLockfile("demo", []LockedPackage{
		{Name: "zeta", Source: "path"},
		{Name: "alpha", Source: "path"},
	})
	if lock.Packages[0].Name != "alpha" || lock.Packages[1].Name != "zeta" {
		t.Fatalf("packages should be sorted by name, got %v", lock.Packages)
	}
}

func TestLoadLockfileMissing(t *testing.T) {
	lock, err := LoadLockfile(filepath.Join(t.TempDir(), LockfileName))
	if err != nil {
		t.Fatalf("missing lockfile should not be an error, got %v", err)
	}
	if lock != nil {
		t.Fatalf("expected nil lockfile, got %v", lock)
	}
}

func TestLoadLockfileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileName)
	if err := os.WriteFile(path, []byte("root: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadLockfile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLockfileLookup(t *testing.T) {
	lock := NewLockfile("demo", []LockedPackage{
		{Name: "strings", Source: "https://example.com/lox-strings.git"},
	})
	if _, ok := lock.Lookup("strings"); !ok {
		t.Fatalf("expected to find locked package")
	}
	if _, ok := lock.Lookup("absent"); ok {
		t.Fatalf("did not expect to find absent package")
	}
	var empty *Lockfile
	if _, ok := empty.Lookup("anything"); ok {
		t.Fatalf("nil lockfile lookup should miss")
	}
}

func TestLockfileWriteUsesTwoSpaceIndent(t *testing.T) {
	dir := t.TempDir()
	lock := NewLockfile("demo", []LockedPackage{
		{Name: "strings", Source: "https://example.com/lox-strings.git"},
	})
	if err := lock.Write(dir); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, LockfileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "\n  - name: strings") {
		t.Fatalf("unexpected encoding:\n%s", data)
	}
}
