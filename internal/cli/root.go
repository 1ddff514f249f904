package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codeatlas",
	Short: "CodeAtlas - source metadata extraction",
	Long: `CodeAtlas analyzes source trees and produces structured fact sheets:
functions, classes, imports, exports, and language-specific details for
Python, TypeScript, JavaScript, PHP, HTML, CSS dialects, SQL, and Markdown.

Results are stored in a SQLite database under .codeatlas/ for querying.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
