package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV parses a roster table. The header row maps columns by name, so
// missing columns leave defaults and unknown columns are ignored.
func ReadCSV(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	roster := New()
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blankRow(row) {
			continue
		}

		values := make(map[string]any, len(header))
		for i, column := range header {
			if column == "" || i >= len(row) {
				continue
			}
			values[column] = row[i]
		}

		rec, err := FromMap(values)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		roster.Items = append(roster.Items, rec)
	}

	return roster, nil
}

// WriteCSV renders the roster with a header row in Columns order.
func WriteCSV(w io.Writer, roster *Roster) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for i := range roster.Items {
		if err := writer.Write(roster.Items[i].Values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadFile reads a roster CSV. A missing file is an empty roster.
func LoadFile(path string) (*Roster, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	roster, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roster, nil
}

// SaveFile writes the roster next to path and renames it into place.
func SaveFile(path string, roster *Roster) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".roster_*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, roster); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
