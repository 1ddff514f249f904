package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeatlas/internal/analysis"
	"codeatlas/internal/analyzers"
)

var compactFlag bool

// fileReport is the JSON shape printed by the analyze command.
type fileReport struct {
	Path        string           `json:"path"`
	Language    string           `json:"language"`
	LinesOfCode int              `json:"lines_of_code"`
	Complexity  float64          `json:"complexity"`
	Analysis    *analysis.Result `json:"analysis"`
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single file and print its fact sheet as JSON",
	Long: `Analyze runs the language analyzer for one file and prints the result
to stdout without touching the database.

Examples:
  codeatlas analyze src/models.py
  codeatlas analyze --compact web/styles/theme.scss | jq .analysis.selectors
`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&compactFlag, "compact", false, "Print compact JSON instead of indented")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	analyzer := analyzers.NewRegistry().ForPath(path)
	if analyzer == nil {
		return fmt.Errorf("no analyzer for %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(data)

	result := analyzer.AnalyzeContent(content, path)
	report := fileReport{
		Path:        path,
		Language:    result.Language,
		LinesOfCode: analyzer.CountLinesOfCode(content),
		Complexity:  analyzer.CalculateComplexity(content),
		Analysis:    result,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !compactFlag {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
