// Package pathutil provides centralized path management for report exports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var yearMonthPattern = regexp.MustCompile(`^\d{6}$`)

// PathResolver manages paths for the generated report files.
type PathResolver struct {
	exportRoot string
}

// New creates a new PathResolver rooted at exportRoot.
func New(exportRoot string) *PathResolver {
	return &PathResolver{exportRoot: exportRoot}
}

// FromEnv creates a PathResolver from the LOLA_EXPORT_ROOT environment
// variable.
func FromEnv() (*PathResolver, error) {
	root := os.Getenv("LOLA_EXPORT_ROOT")
	if root == "" {
		return nil, fmt.Errorf("LOLA_EXPORT_ROOT environment variable is required")
	}
	return New(root), nil
}

// GetExportRoot returns the export root directory.
func (p *PathResolver) GetExportRoot() string {
	return p.exportRoot
}

// GetMonthDir returns the directory for one month's reports.
// yearMonth must be in YYYYMM format. Example: exports/202411
func (p *PathResolver) GetMonthDir(yearMonth string) (string, error) {
	if !yearMonthPattern.MatchString(yearMonth) {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYYMM", yearMonth)
	}
	return filepath.Join(p.exportRoot, yearMonth), nil
}

// GetReportPath returns the path of a monthly report file.
// Example: exports/202411/summary_202411.csv
func (p *PathResolver) GetReportPath(report, yearMonth string) (string, error) {
	dir, err := p.GetMonthDir(yearMonth)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", report, yearMonth)), nil
}

// GetClosingPath returns the path of the year-end closing report.
// Example: exports/closing_2024.csv
func (p *PathResolver) GetClosingPath(year string) string {
	return filepath.Join(p.exportRoot, fmt.Sprintf("closing_%s.csv", year))
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// IsDir checks if a path is a directory.
func (p *PathResolver) IsDir(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
