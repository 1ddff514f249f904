package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <path>",
	Short: "Print the stored fact sheet for a scanned file",
	Long: `Report prints the fact sheet a previous scan stored for the given path.
The path must match the scan-relative path shown by the symbols command.

Example:
  codeatlas report src/models.py
`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := db.GetReport(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
