package lint

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/pepfix/pkg/fsutil"
)

// I/O error kinds. These are fatal for the file being processed.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReadFailure indicates any other read error.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Engine error kinds.
var (
	// ErrMalformedResult indicates a detector returned an error or
	// diagnostics that do not fit the document. Fatal for the file's
	// remaining categories.
	ErrMalformedResult = errors.New("malformed detector result")

	// ErrConvergenceExceeded indicates a category was still dirty when its
	// pass cap was reached, or a correction pass changed nothing.
	ErrConvergenceExceeded = errors.New("convergence exceeded")

	// ErrStructuralParse indicates the statement tree could not be built.
	// Fatal for the category only.
	ErrStructuralParse = errors.New("structural parse failure")

	// ErrCorrectionFailed indicates a corrector failed or produced invalid
	// edits. Fatal for the category only.
	ErrCorrectionFailed = errors.New("correction failed")
)

// RuleError attaches file and category context to an error.
type RuleError struct {
	Path   string
	RuleID string

	// Line is the line the error refers to, or 0.
	Line int

	Err error
}

func (e *RuleError) Error() string {
	switch {
	case e.RuleID == "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.RuleID, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Path, e.RuleID, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is one of the I/O error kinds.
func IsIOError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrReadFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// IsFileFatal reports whether err stops processing of the whole file.
func IsFileFatal(err error) bool {
	return IsIOError(err) || errors.Is(err, ErrMalformedResult)
}

// categorizeError wraps a read error with the matching I/O error kind.
// It uses errors.Is rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
}
