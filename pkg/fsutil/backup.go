package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupMode specifies how the original content is preserved when fixing.
type BackupMode string

const (
	// BackupModeSidecar stores the original next to the file with a .pepfix.bak suffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeCopy leaves the original untouched and writes fixes to a
	// "-Copy" sibling (name-Copy.py).
	BackupModeCopy BackupMode = "copy"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".pepfix.bak"

// CopySuffix is inserted before the extension of copy-mode outputs.
const CopySuffix = "-Copy"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the backup defaults: sidecar backups enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled: true,
		Mode:    BackupModeSidecar,
	}
}

// BackupPath returns the sidecar backup path for the given file, or "" when
// the mode keeps no sidecar.
func BackupPath(path string, mode BackupMode) string {
	switch mode {
	case BackupModeNone, BackupModeCopy:
		return ""
	default:
		return path + BackupSuffix
	}
}

// CopyPath returns the copy-mode output path: dir/name-Copy.ext.
func CopyPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + CopySuffix + ext
}

// IsCopyPath reports whether path names a copy-mode output.
func IsCopyPath(path string) bool {
	base := filepath.Base(path)
	return strings.Contains(strings.TrimSuffix(base, filepath.Ext(base)), CopySuffix)
}

// CreateBackup creates a sidecar backup of the file at path if one does not
// already exist. Returns true if a backup was created.
//
// An existing backup is never overwritten, so repeated runs keep the
// content from before the first fix.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}

	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}

// BackupExists checks if a sidecar backup exists for the given path.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}
