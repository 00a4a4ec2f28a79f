// Package paths owns the on-disk project layout shared by all extractors.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout resolves project-relative paths under a base directory. The
// healthcare system segment is lowercased everywhere.
type Layout struct {
	BaseDir string
}

func system(s string) string {
	return strings.ToLower(s)
}

// RawFile is the source MRF location: data/raw data/<system>/<filename>.
func (l Layout) RawFile(healthcareSystem, filename string) string {
	return filepath.Join(l.BaseDir, "data", "raw data", system(healthcareSystem), filename)
}

// ExtractedFile is the canonical CSV output location.
func (l Layout) ExtractedFile(healthcareSystem, campusID string) string {
	return filepath.Join(l.extractedDir(healthcareSystem), campusID+"_extracted.csv")
}

// ParquetFile is the optional parquet mirror location.
func (l Layout) ParquetFile(healthcareSystem, campusID string) string {
	return filepath.Join(l.extractedDir(healthcareSystem), campusID+"_extracted.parquet")
}

// DevlogFile is the per-run audit report location.
func (l Layout) DevlogFile(healthcareSystem, campusID string) string {
	return filepath.Join(l.devlogDir(healthcareSystem), campusID+"_devlog.json")
}

func (l Layout) extractedDir(healthcareSystem string) string {
	return filepath.Join(l.BaseDir, "data", "extracted data", system(healthcareSystem))
}

func (l Layout) devlogDir(healthcareSystem string) string {
	return filepath.Join(l.BaseDir, "data", "logs", "devlogs", system(healthcareSystem))
}

// EnsureDirs creates the output directories for a system if absent.
func (l Layout) EnsureDirs(healthcareSystem string) error {
	for _, dir := range []string{l.extractedDir(healthcareSystem), l.devlogDir(healthcareSystem)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
