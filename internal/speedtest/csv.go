package speedtest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoFile is returned when a load is requested without a file.
var ErrNoFile = errors.New("please select a CSV file")

// ReadCSV reads a speed-test export. The first row is always treated as the
// header and skipped; rows may have any number of fields.
func ReadCSV(r io.Reader, s Schema) ([]TestRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(recs) == 0 {
		return []TestRecord{}, nil
	}
	return ParseRows(recs[1:], s), nil
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, s Schema) ([]TestRecord, error) {
	if path == "" {
		return nil, ErrNoFile
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, s)
}
