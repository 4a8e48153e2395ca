// Package store owns the on-disk layout of the updater: the full/ and
// valid/ language file areas, the version marker and the summary
// report.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SkyEye-FAST/mc-lang/internal/lang"
	"github.com/SkyEye-FAST/mc-lang/pkg/file"
)

const (
	fullDirName  = "full"
	validDirName = "valid"
	versionFile  = "version.txt"
	summaryFile  = "summary.json"
)

// Store persists run artifacts under a root directory. All writes are
// atomic so a crash mid-run never leaves truncated files behind.
type Store struct {
	root     string
	fullDir  string
	validDir string
}

// New creates a Store rooted at dir, creating the output areas.
func New(dir string) (*Store, error) {
	s := &Store{
		root:     dir,
		fullDir:  filepath.Join(dir, fullDirName),
		validDir: filepath.Join(dir, validDirName),
	}
	for _, d := range []string{s.fullDir, s.validDir} {
		if err := file.EnsureDir(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FullPath returns the path of a locale's full language file.
func (s *Store) FullPath(locale string) string {
	return filepath.Join(s.fullDir, locale+".json")
}

// ValidPath returns the path of a locale's filtered language file.
func (s *Store) ValidPath(locale string) string {
	return filepath.Join(s.validDir, locale+".json")
}

// WriteFull writes the raw upstream payload of a locale verbatim, so
// re-runs against identical upstream data are byte-identical.
func (s *Store) WriteFull(locale string, raw []byte) error {
	if err := file.WriteAtomic(s.FullPath(locale), raw); err != nil {
		return fmt.Errorf("failed to write full language file for %s: %w", locale, err)
	}
	return nil
}

// WriteValid encodes and writes the filtered mapping of a locale.
func (s *Store) WriteValid(locale string, m *lang.Mapping) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode valid language file for %s: %w", locale, err)
	}
	if err := file.WriteAtomic(s.ValidPath(locale), data); err != nil {
		return fmt.Errorf("failed to write valid language file for %s: %w", locale, err)
	}
	return nil
}

// Version reads the stored version marker. A missing marker is not an
// error and reads as the empty string.
func (s *Store) Version() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, versionFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read version marker: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetVersion updates the version marker. Callers must only do this
// after a fully successful run.
func (s *Store) SetVersion(version string) error {
	if err := file.WriteAtomic(filepath.Join(s.root, versionFile), []byte(version)); err != nil {
		return fmt.Errorf("failed to write version marker: %w", err)
	}
	return nil
}

// WriteSummary replaces the summary report.
func (s *Store) WriteSummary(data []byte) error {
	if err := file.WriteAtomic(filepath.Join(s.root, summaryFile), data); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	return nil
}

// SummaryPath returns the path of the summary report.
func (s *Store) SummaryPath() string {
	return filepath.Join(s.root, summaryFile)
}
