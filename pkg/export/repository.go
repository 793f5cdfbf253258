package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/lolaverein/lola-accounting/pkg/pathutil"
)

// Repository defines the interface for report file operations.
type Repository interface {
	// WriteTable writes a table to the given report path
	WriteTable(path string, table *Table) error

	// ReadTable reads a previously written report
	ReadTable(path string) (*Table, error)

	// TableExists checks if a report file exists
	TableExists(path string) bool
}

// FileSystemRepository is a file system implementation of Repository
// writing comma-separated text with a header row.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
	}
}

// WriteTable writes the table to path, creating parent directories as
// needed. An existing file is replaced; reports are whole-run artifacts,
// never appended to.
func (r *FileSystemRepository) WriteTable(path string, table *Table) error {
	if err := r.pathResolver.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return nil
}

// ReadTable reads a report file back into a table.
func (r *FileSystemRepository) ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("report file %s has no header row", path)
	}

	table := NewTable(rows[0])
	for _, row := range rows[1:] {
		table.Append(row)
	}
	return table, nil
}

// TableExists checks if a report file exists.
func (r *FileSystemRepository) TableExists(path string) bool {
	return r.pathResolver.FileExists(path)
}
