package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigPath(t *testing.T) {
	tmp := t.TempDir()

	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	want := filepath.Join(tmp, ConfigFileName)
	if got := mgr.ConfigPath(); got != want {
		t.Fatalf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.org"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read() error = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read() error = %v, want os.ErrNotExist", err)
	}
}

func TestReadRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.org")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Read(path); !errors.Is(err, ErrNotText) {
		t.Fatalf("Read() error = %v, want ErrNotText", err)
	}
}

func TestWriteAtomicPreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.org")
	if err := os.WriteFile(path, []byte("* old\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := WriteAtomic(path, "* new\n"); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "* new\n" {
		t.Fatalf("contents = %q, want %q", got, "* new\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries, want only the target", len(entries))
	}
}
