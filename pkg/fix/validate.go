package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns nil if all edits are valid, or the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
// Edits at the same position keep the order the corrector produced them in.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// MergeAndFilterConflicts merges overlapping deletions and drops any other
// edit that overlaps an earlier one. Edits must be sorted by SortEdits.
//
// Returns:
//   - accepted: edits to apply (merged where possible)
//   - skipped: edits that overlapped and could not be merged
//   - merged: count of edits folded into another deletion
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted := make([]TextEdit, 0, len(edits))
	var skipped []TextEdit
	merged := 0

	current := edits[0]
	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= current.EndOffset:
			accepted = append(accepted, current)
			current = edit
		case current.NewText == "" && edit.NewText == "":
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged
}

// PrepareEditsFiltered validates, sorts, merges, and filters conflicting edits.
// Conflicts are not errors: the later edit is skipped and the violation it
// targeted is expected to be re-detected on the next pass.
// Returns (accepted edits, skipped edits, merged count, error).
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	accepted, skipped, merged := MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}

// FirstPerLine keeps only the first edit starting on each line and returns
// the kept and dropped edits. lineOf maps a byte offset to its line number.
// Edits must be sorted by SortEdits.
func FirstPerLine(edits []TextEdit, lineOf func(offset int) int) ([]TextEdit, []TextEdit) {
	kept := make([]TextEdit, 0, len(edits))
	var dropped []TextEdit

	lastLine := -1
	for _, edit := range edits {
		line := lineOf(edit.StartOffset)
		if line == lastLine {
			dropped = append(dropped, edit)
			continue
		}
		kept = append(kept, edit)
		lastLine = line
	}

	return kept, dropped
}
