// Package speedtest holds the speed-test record model and the pure
// operations over a loaded record set: parsing, aggregation and filtering.
package speedtest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"speedmap/internal/geom"
)

// TestRecord is one parsed speed-test measurement. Latitude and Longitude are
// NaN when the source cell was missing or not numeric.
type TestRecord struct {
	Row           int // 1-based data row, header excluded
	Timestamp     string
	Category      string
	Latitude      float64
	Longitude     float64
	DownloadMbps  float64
	UploadMbps    float64
	DownloadBytes float64
	UploadBytes   float64
	SourceURL     string
}

// Point returns the record position.
func (r TestRecord) Point() geom.LatLng {
	return geom.LatLng{Lat: r.Latitude, Lng: r.Longitude}
}

// HasLocation reports whether the record can take part in spatial operations.
func (r TestRecord) HasLocation() bool { return r.Point().Valid() }

// Schema maps record fields to CSV column positions. A negative position
// means the column is absent.
type Schema struct {
	Timestamp     int `yaml:"timestamp"`
	Category      int `yaml:"category"`
	Latitude      int `yaml:"latitude"`
	Longitude     int `yaml:"longitude"`
	DownloadSpeed int `yaml:"download_speed"`
	DownloadBytes int `yaml:"download_bytes"`
	UploadSpeed   int `yaml:"upload_speed"`
	UploadBytes   int `yaml:"upload_bytes"`
	SourceURL     int `yaml:"source_url"`
}

// DefaultSchema is the column layout of the speed-test export.
func DefaultSchema() Schema {
	return Schema{
		Timestamp:     0,
		Category:      1,
		Latitude:      2,
		Longitude:     3,
		DownloadSpeed: 4,
		DownloadBytes: 5,
		UploadSpeed:   6,
		UploadBytes:   7,
		SourceURL:     12,
	}
}

// ParseRows converts data rows (header already removed) into records.
// No row is dropped: unparseable speeds and byte counts become 0 and
// unparseable coordinates become NaN.
func ParseRows(rows [][]string, s Schema) []TestRecord {
	out := make([]TestRecord, 0, len(rows))
	for i, row := range rows {
		out = append(out, parseRow(i+1, row, s))
	}
	return out
}

func parseRow(n int, row []string, s Schema) TestRecord {
	return TestRecord{
		Row:           n,
		Timestamp:     cell(row, s.Timestamp),
		Category:      cell(row, s.Category),
		Latitude:      coordinate(cell(row, s.Latitude)),
		Longitude:     coordinate(cell(row, s.Longitude)),
		DownloadMbps:  amount(cell(row, s.DownloadSpeed)),
		DownloadBytes: amount(cell(row, s.DownloadBytes)),
		UploadMbps:    amount(cell(row, s.UploadSpeed)),
		UploadBytes:   amount(cell(row, s.UploadBytes)),
		SourceURL:     strings.TrimSpace(cell(row, s.SourceURL)),
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func coordinate(s string) float64 {
	v, ok := parseLeadingFloat(s)
	if !ok {
		return math.NaN()
	}
	return v
}

func amount(s string) float64 {
	v, ok := parseLeadingFloat(s)
	if !ok || v < 0 {
		return 0
	}
	return v
}

var numPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// parseLeadingFloat reads the longest numeric prefix of s after leading
// whitespace, so "52.1N" yields 52.1. Non-finite results are rejected.
func parseLeadingFloat(s string) (float64, bool) {
	m := numPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
