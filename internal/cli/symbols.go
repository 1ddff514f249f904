package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"codeatlas/internal/config"
	"codeatlas/internal/store"
)

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols <query>",
	Short: "Search stored symbols by name",
	Long: `Symbols searches the flat symbol index written by a previous scan.
Matching is a case-insensitive substring match on the symbol name.

Examples:
  codeatlas symbols Greeter
  codeatlas symbols handle_
`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Show stored file counts per language",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(languagesCmd)
}

// openStore opens the database for the working directory's project.
func openStore() (*store.Store, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(wd)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPath := cfg.Storage.Location
	if dbPath == "" {
		dbPath = filepath.Join(wd, store.DefaultLocation)
	}
	return store.Open(dbPath)
}

func runSymbols(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	symbols, err := db.FindSymbols(args[0])
	if err != nil {
		return err
	}

	if len(symbols) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No symbols matching %q\n", args[0])
		return nil
	}

	for _, sym := range symbols {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-30s %s:%d\n", sym.Kind, sym.Name, sym.Path, sym.Line)
	}
	return nil
}

func runLanguages(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := db.CountByLanguage()
	if err != nil {
		return err
	}

	languages := make([]string, 0, len(counts))
	total := 0
	for lang, count := range counts {
		languages = append(languages, lang)
		total += count
	}
	sort.Strings(languages)

	fmt.Fprintf(cmd.OutOrStdout(), "%d files stored\n", total)
	for _, lang := range languages {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", lang, formatNumber(counts[lang]))
	}
	return nil
}
