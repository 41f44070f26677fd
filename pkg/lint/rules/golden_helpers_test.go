package rules

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/lint"
)

// GoldenTestCase represents a single golden file test case.
type GoldenTestCase struct {
	// Name is the test case name derived from the file path.
	Name string

	// InputPath is the absolute path to the input Python file.
	InputPath string

	// GoldenPath is the absolute path to the expected output after fixes.
	GoldenPath string

	// DiagsJSONPath is the path to the expected diagnostics JSON file.
	DiagsJSONPath string

	// RuleID is the category to test (empty means the whole catalogue).
	RuleID string

	// IsRealWorld indicates this is a real-world test (whole catalogue).
	IsRealWorld bool
}

// DiagExpectation represents an expected diagnostic in JSON format.
type DiagExpectation struct {
	Code     string `json:"code"`
	Rule     string `json:"rule"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func diagFromLint(diag lint.Diagnostic) DiagExpectation {
	return DiagExpectation{
		Code:     diag.Code,
		Rule:     diag.RuleID,
		Line:     diag.Line,
		Column:   diag.Column,
		Message:  diag.Message,
		Severity: string(diag.Severity),
	}
}

// discoverTestCases walks the testdata directory. Directories named after a
// category ID run only that category; real-world runs the whole catalogue.
func discoverTestCases(t *testing.T, baseDir string) []GoldenTestCase {
	t.Helper()

	cases := make([]GoldenTestCase, 0)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return cases
		}
		t.Fatalf("failed to read testdata directory: %v", err)
	}

	catalogue := NewCatalogue(lint.DefaultOptions())

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirName := entry.Name()
		dirPath := filepath.Join(baseDir, dirName)

		isRealWorld := dirName == "real-world"
		ruleID := ""
		if _, ok := catalogue.Lookup(dirName); ok {
			ruleID = dirName
		} else if !isRealWorld {
			t.Fatalf("testdata directory %s is neither a category nor real-world", dirName)
		}

		inputFiles, err := filepath.Glob(filepath.Join(dirPath, "*.input.py"))
		if err != nil {
			t.Fatalf("failed to glob input files in %s: %v", dirPath, err)
		}

		for _, inputPath := range inputFiles {
			baseName := strings.TrimSuffix(filepath.Base(inputPath), ".input.py")

			cases = append(cases, GoldenTestCase{
				Name:          filepath.Join(dirName, baseName),
				InputPath:     inputPath,
				GoldenPath:    filepath.Join(dirPath, baseName+".golden.py"),
				DiagsJSONPath: filepath.Join(dirPath, baseName+".diags.json"),
				RuleID:        ruleID,
				IsRealWorld:   isRealWorld,
			})
		}
	}

	return cases
}

// loadExpectedDiags loads the expected diagnostics from a JSON file.
// Returns nil if the file doesn't exist.
func loadExpectedDiags(t *testing.T, path string) []DiagExpectation {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read diagnostics file %s: %v", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []DiagExpectation{}
	}

	var diags []DiagExpectation
	if err := json.Unmarshal(data, &diags); err != nil {
		t.Fatalf("failed to parse diagnostics JSON %s: %v", path, err)
	}

	return diags
}

func writeGoldenFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write golden file %s: %v", path, err)
	}

	t.Logf("Updated golden file: %s", path)
}

// compareWithGolden compares actual bytes with the golden file.
// If update is true, it updates the golden file instead of comparing.
func compareWithGolden(t *testing.T, actual []byte, goldenPath string, update bool) {
	t.Helper()

	if update {
		writeGoldenFile(t, goldenPath, actual)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Errorf("Golden file does not exist: %s\nRun with -update flag to create it.", goldenPath)
		t.Logf("Actual content:\n%s", actual)
		return
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), string(actual), "output does not match golden file %s", goldenPath)
}

// compareDiags compares actual diagnostics with the expected JSON file.
// If update is true, it rewrites the JSON file instead of comparing.
func compareDiags(t *testing.T, actual []lint.Diagnostic, tc GoldenTestCase, update bool) {
	t.Helper()

	got := make([]DiagExpectation, len(actual))
	for i, diag := range actual {
		got[i] = diagFromLint(diag)
	}

	if update {
		data, err := json.MarshalIndent(got, "", "  ")
		require.NoError(t, err)
		writeGoldenFile(t, tc.DiagsJSONPath, append(data, '\n'))
		return
	}

	expected := loadExpectedDiags(t, tc.DiagsJSONPath)
	if expected == nil {
		t.Errorf("Diagnostics JSON file does not exist: %s\nRun with -update flag to create it.", tc.DiagsJSONPath)
		return
	}

	if !assert.Len(t, got, len(expected), "diagnostic count mismatch") {
		for _, diag := range got {
			t.Logf("  %s:%d:%d %s %s (%s)", filepath.Base(tc.InputPath), diag.Line, diag.Column, diag.Code, diag.Message, diag.Rule)
		}
		return
	}

	for idx := range got {
		assert.Equal(t, expected[idx], got[idx], "diagnostic %d", idx)
	}
}
