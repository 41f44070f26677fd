package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/pepfix/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode fsutil.BackupMode
		want string
	}{
		{name: "sidecar", mode: fsutil.BackupModeSidecar, want: "/src/app.py.pepfix.bak"},
		{name: "copy keeps no sidecar", mode: fsutil.BackupModeCopy, want: ""},
		{name: "none", mode: fsutil.BackupModeNone, want: ""},
		{name: "unknown defaults to sidecar", mode: fsutil.BackupMode("other"), want: "/src/app.py.pepfix.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.BackupPath("/src/app.py", tt.mode); got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCopyPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.CopyPath("/src/app.py"); got != "/src/app-Copy.py" {
		t.Errorf("CopyPath() = %q", got)
	}
	if !fsutil.IsCopyPath("/src/app-Copy.py") {
		t.Error("IsCopyPath(app-Copy.py) = false")
	}
	if fsutil.IsCopyPath("/src-Copy/app.py") {
		t.Error("IsCopyPath should only consider the file name")
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates once and never overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.py")
		if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		if err := os.WriteFile(path, []byte("fixed"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		created, err = fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("backup content = %q, want original", got)
		}
		if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("BackupExists() = false")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.py")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
			{Enabled: true, Mode: fsutil.BackupModeCopy},
		} {
			created, err := fsutil.CreateBackup(ctx, path, cfg)
			if err != nil || created {
				t.Errorf("CreateBackup(%+v) = %v, %v; want false, nil", cfg, created, err)
			}
		}
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "gone.py")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})
}
