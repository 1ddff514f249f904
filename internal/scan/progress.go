package scan

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(codeFiles, docFiles int)

	// OnAnalysisStart is called before analyzing files.
	OnAnalysisStart(totalFiles int)

	// OnFileAnalyzed is called after each file is analyzed or skipped.
	OnFileAnalyzed(fileName string)

	// OnComplete is called when the scan finishes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                           {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(codeFiles, docFiles int) {}
func (n *NoOpProgressReporter) OnAnalysisStart(totalFiles int)              {}
func (n *NoOpProgressReporter) OnFileAnalyzed(fileName string)              {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                     {}
