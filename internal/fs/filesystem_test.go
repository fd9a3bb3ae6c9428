package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"docvault/internal/fs"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.txt")
		if err := os.WriteFile(path, []byte("hello"), 0600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		f, err := fs.Resolve(path)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if f.Name() != "doc.txt" {
			t.Errorf("Name() = %q, want %q", f.Name(), "doc.txt")
		}
		if f.Size() != 5 {
			t.Errorf("Size() = %d, want 5", f.Size())
		}
		if !filepath.IsAbs(f.String()) {
			t.Errorf("String() = %q, want absolute path", f.String())
		}

		data, err := f.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("Read() = %q, want %q", data, "hello")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := fs.Resolve(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Error("Resolve() of a missing file succeeded")
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		if _, err := fs.Resolve(t.TempDir()); err == nil {
			t.Error("Resolve() of a directory succeeded")
		}
	})

	t.Run("symlink", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		target := filepath.Join(dir, "target.txt")
		if err := os.WriteFile(target, []byte("x"), 0600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		link := filepath.Join(dir, "link.txt")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		if _, err := fs.Resolve(link); err == nil {
			t.Error("Resolve() of a symlink succeeded")
		}
	})
}
