// Package rules provides the built-in style categories for pepfix.
//
// # Categories
//
// Each category pairs a detector with a corrector. They run in a fixed order:
//
//   - trailing-whitespace: W291, W293
//   - tabs: W191
//   - extraneous-whitespace: E201, E202, E203
//   - missing-whitespace: E231
//   - whitespace-before-parameters: E211
//   - whitespace-around-operators: E221, E222, E225
//   - import-placement: E400
//   - multiple-imports: E401
//   - blank-lines: E301, E302
//   - trailing-whitespace (second pass)
//   - missing-final-newline: W292
//
// Line categories scan the masked code of each physical line produced by
// pysrc.Scan, so string interiors and comments never match. Import placement
// and blank lines walk the statement tree.
//
// # Construction
//
// NewCatalogue builds the immutable catalogue from rule options. There is no
// global registry.
package rules
