// Package loader reads one source export from disk into a raw table.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Sentinel errors for load failures. They are wrapped with the path.
var (
	// ErrNotFound indicates the export file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFormat indicates an extension other than .xlsx or .csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadable indicates the file exists but could not be read or parsed.
	ErrUnreadable = errors.New("unreadable file")
)

// Format is a supported file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatOf returns the format implied by the path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("loader: %s: %w", path, ErrUnsupportedFormat)
	}
}

// File is an export read into memory but not yet parsed.
type File struct {
	Path        string
	Format      Format
	Data        []byte
	Fingerprint string
}

// Open reads path and fingerprints its contents. The extension is checked
// before the file is touched.
func Open(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loader: %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("loader: %s: %w: %v", path, ErrUnreadable, err)
	}

	return &File{
		Path:        path,
		Format:      format,
		Data:        data,
		Fingerprint: Fingerprint(data),
	}, nil
}

// Table parses the file into a raw table. The first row is the header.
// Empty cells become null; every other cell is kept as text.
func (f *File) Table() (*table.Table, error) {
	var (
		records [][]string
		err     error
	)
	switch f.Format {
	case FormatXLSX:
		records, err = readXLSX(f.Data)
	case FormatCSV:
		records, err = readCSV(f.Data)
	default:
		return nil, fmt.Errorf("loader: %s: %w", f.Path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w: %v", f.Path, ErrUnreadable, err)
	}
	return build(records), nil
}

// Load opens and parses path in one step.
func Load(path string) (*table.Table, string, error) {
	f, err := Open(path)
	if err != nil {
		return nil, "", err
	}
	t, err := f.Table()
	if err != nil {
		return nil, "", err
	}
	return t, f.Fingerprint, nil
}

// Fingerprint returns the hex sha256 of data.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func build(records [][]string) *table.Table {
	if len(records) == 0 {
		return table.Empty()
	}
	header := records[0]
	rows := make([]table.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make(table.Row, len(header))
		for i := range header {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				row[i] = table.String(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return table.New(header, rows)
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
