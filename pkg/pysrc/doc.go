// Package pysrc provides the read-only view of a Python source file used by
// pepfix detectors:
//   - Document: the file content with per-line offsets
//   - LineView: a per-line lexical mask separating code from strings and comments
//   - Module: a statement tree built from logical lines and indentation
//
// The tree only distinguishes what the style rules need (imports, definitions,
// decorators and block structure). It is not a general Python parser.
package pysrc
