package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/pepfix/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and applies mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "mod.py")
		if err := os.WriteFile(path, []byte("x=1"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x = 1\n"), 0755); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "x = 1\n" {
			t.Errorf("content = %q", got)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != 0755 {
			t.Errorf("mode = %v, want 0755", stat.Mode().Perm())
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("temp files left behind: %d entries", len(entries))
		}
	})

	t.Run("missing directory fails without side effects", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "mod.py")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
