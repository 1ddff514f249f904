package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidWorkers indicates an invalid worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidFileSize indicates an invalid file size limit
	ErrInvalidFileSize = errors.New("invalid file size limit")

	// ErrEmptyPatterns indicates that no file patterns were configured
	ErrEmptyPatterns = errors.New("empty path patterns")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	// Ignore patterns may be empty, but with no code and no docs patterns
	// a scan would silently do nothing.
	if len(cfg.Code) == 0 && len(cfg.Docs) == 0 {
		return fmt.Errorf("%w: at least one code or docs pattern required", ErrEmptyPatterns)
	}
	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	// Zero means one worker per CPU; negative makes no sense
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	// Zero means no size limit; negative makes no sense
	if cfg.MaxFileSizeKB < 0 {
		errs = append(errs, fmt.Errorf("%w: max_file_size_kb cannot be negative, got %d", ErrInvalidFileSize, cfg.MaxFileSizeKB))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
