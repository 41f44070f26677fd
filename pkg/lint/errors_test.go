package lint_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pepfix/pkg/lint"
)

func TestRuleErrorFormat(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *lint.RuleError
		want string
	}{
		{
			name: "file level",
			err:  &lint.RuleError{Path: "a.py", Err: cause},
			want: "a.py: boom",
		},
		{
			name: "category level",
			err:  &lint.RuleError{Path: "a.py", RuleID: "tabs", Err: cause},
			want: "a.py: tabs: boom",
		},
		{
			name: "with line",
			err:  &lint.RuleError{Path: "a.py", RuleID: "blank-lines", Line: 4, Err: cause},
			want: "a.py:4: blank-lines: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err       error
		wantIO    bool
		wantFatal bool
	}{
		{err: lint.ErrFileNotFound, wantIO: true, wantFatal: true},
		{err: lint.ErrPermissionDenied, wantIO: true, wantFatal: true},
		{err: lint.ErrReadFailure, wantIO: true, wantFatal: true},
		{err: lint.ErrWriteFailure, wantIO: true, wantFatal: true},
		{err: lint.ErrMalformedResult, wantFatal: true},
		{err: lint.ErrConvergenceExceeded},
		{err: lint.ErrStructuralParse},
		{err: lint.ErrCorrectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			wrapped := &lint.RuleError{Path: "a.py", Err: fmt.Errorf("%w: detail", tt.err)}
			assert.Equal(t, tt.wantIO, lint.IsIOError(wrapped))
			assert.Equal(t, tt.wantFatal, lint.IsFileFatal(wrapped))
		})
	}
}
