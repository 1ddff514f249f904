package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"codeatlas/internal/analyzers"
	"codeatlas/internal/config"
	"codeatlas/internal/scan"
	"codeatlas/internal/store"
)

var (
	quietFlag   bool
	noStoreFlag bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a source tree and store per-file fact sheets",
	Long: `Scan walks a directory tree, routes each file to its language analyzer,
and stores the resulting fact sheets in .codeatlas/atlas.db.

The scanner:
  - Discovers files via the glob patterns in .codeatlas/config.yml
  - Extracts functions, classes, imports, exports, and patterns
  - Records language-specific details (selectors, tables, headings, ...)
  - Persists reports and a flat symbol index in SQLite

Examples:
  # Scan the current directory
  codeatlas scan

  # Scan a specific directory without progress bars
  codeatlas scan --quiet /path/to/project

  # Analyze without persisting anything
  codeatlas scan --no-store
`,
	Aliases: []string{"index"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().BoolVar(&noStoreFlag, "no-store", false, "Analyze only; skip writing the database")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling scan...")
		cancel()
	}()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reporter := NewCLIProgressReporter(quietFlag)
	scanner := scan.NewScanner(rootDir, cfg, analyzers.NewRegistry(), reporter)

	reports, stats, err := scanner.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if !noStoreFlag {
		dbPath := cfg.Storage.Location
		if dbPath == "" {
			dbPath = filepath.Join(rootDir, store.DefaultLocation)
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer db.Close()

		if err := db.SaveReports(reports); err != nil {
			return fmt.Errorf("failed to save reports: %w", err)
		}
	}

	if !quietFlag {
		printLanguageBreakdown(stats)
	}

	return nil
}

func printLanguageBreakdown(stats *scan.Stats) {
	languages := make([]string, 0, len(stats.ByLanguage))
	for lang := range stats.ByLanguage {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		fmt.Printf("  %-12s %s\n", lang, formatNumber(stats.ByLanguage[lang]))
	}
}

// resolveRoot turns the optional positional argument into an absolute
// directory, defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve directory: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("not a directory: %s", abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
