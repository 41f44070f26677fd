package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/pepfix/internal/ui/pretty"
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/lint/rules"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// defaultRulesWidth is used when stdout is not a terminal.
const defaultRulesWidth = 80

// ruleInfo represents one catalogue step in JSON output.
type ruleInfo struct {
	Step        int      `json:"step"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Codes       []string `json:"codes"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule categories in execution order",
		Long: `List the rule categories in the order they run, with the violation
codes each one reports and its default severity. A category that appears
twice runs a second time after the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogue := rules.NewCatalogue(lint.DefaultOptions())

			if flags.format == formatJSON {
				return writeRulesJSON(cmd.OutOrStdout(), catalogue)
			}
			if flags.format != "text" {
				return fmt.Errorf("invalid format %q: must be text or json", flags.format)
			}

			colorMode, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
			writeRulesText(cmd.OutOrStdout(), catalogue, styles, outputWidth(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func catalogueInfo(catalogue *lint.Catalogue) []ruleInfo {
	steps := catalogue.Steps()
	infos := make([]ruleInfo, 0, len(steps))
	for idx, rule := range steps {
		infos = append(infos, ruleInfo{
			Step:        idx + 1,
			ID:          rule.ID(),
			Name:        rule.Name(),
			Codes:       rule.Codes(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
		})
	}
	return infos
}

func writeRulesJSON(w io.Writer, catalogue *lint.Catalogue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalogueInfo(catalogue)); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// writeRulesText prints one block per step, wrapping descriptions to width.
func writeRulesText(w io.Writer, catalogue *lint.Catalogue, styles *pretty.Styles, width int) {
	const indent = "      "

	for _, info := range catalogueInfo(catalogue) {
		fmt.Fprintf(w, "%3d.  %s  %s  %s\n",
			info.Step,
			styles.RuleID.Render(info.ID),
			styles.Code.Render(strings.Join(info.Codes, ", ")),
			styles.FormatSeverity(config.Severity(info.Severity)),
		)
		for _, line := range wrapWords(info.Description, width-len(indent)) {
			fmt.Fprintf(w, "%s%s\n", indent, styles.Dim.Render(line))
		}
	}
}

// outputWidth returns the terminal width of w, or defaultRulesWidth.
func outputWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return defaultRulesWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultRulesWidth
	}
	return width
}

// wrapWords splits text into lines of at most width bytes, breaking at
// spaces. A single word longer than width gets a line of its own.
func wrapWords(text string, width int) []string {
	width = max(width, 20)

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
