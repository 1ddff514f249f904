package config

// Config represents the complete codeatlas configuration.
// It can be loaded from .codeatlas/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// PathsConfig defines which files to analyze and which to ignore.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for source files
	Docs   []string `yaml:"docs" mapstructure:"docs"`     // glob patterns for documentation
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// ScanConfig controls directory scanning behavior.
type ScanConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers"`                   // concurrent analyzer workers, 0 means NumCPU
	MaxFileSizeKB int `yaml:"max_file_size_kb" mapstructure:"max_file_size_kb"` // skip files larger than this
}

// StorageConfig defines where analysis results are persisted.
type StorageConfig struct {
	Location string `yaml:"location" mapstructure:"location"` // Override default .codeatlas/atlas.db
}

// Default returns a configuration with sensible defaults.
// The code patterns cover every language with a registered analyzer.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Code: []string{
				"**/*.py",
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.mjs",
				"**/*.cjs",
				"**/*.php",
				"**/*.html",
				"**/*.htm",
				"**/*.css",
				"**/*.scss",
				"**/*.sass",
				"**/*.less",
				"**/*.styl",
				"**/*.sql",
			},
			Docs: []string{
				"**/*.md",
				"**/*.markdown",
				"**/*.mdx",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.min.js",
				"*.min.css",
				"*.pyc",
			},
		},
		Scan: ScanConfig{
			Workers:       0, // 0 means one worker per CPU
			MaxFileSizeKB: 1024,
		},
		Storage: StorageConfig{
			Location: "", // Empty means use default .codeatlas/atlas.db
		},
	}
}

// GetSourceExtensions extracts unique file extensions from code and docs patterns.
// Returns extensions with leading dot (e.g., []string{".py", ".ts", ".md"}).
func (c *Config) GetSourceExtensions() []string {
	extMap := make(map[string]bool)

	for _, pattern := range c.Paths.Code {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	for _, pattern := range c.Paths.Docs {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}

	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Returns empty string if pattern doesn't match a simple extension pattern.
// Examples: "**/*.py" -> ".py", "*.ts" -> ".ts", "**/*.tsx" -> ".tsx"
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
