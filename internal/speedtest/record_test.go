package speedtest

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,network,lat,lng,down,down_bytes,up,up_bytes,c8,c9,c10,c11,url
t1,WiFi,52.0,13.0,100,1e6,10,1e5,,,,,https://example.com/r/1
t2,WiFi,51.0,12.0,50,5e5,5,5e4,,,,,
t3,LTE,50.0,11.0,75,7e5,8,8e4
`

func TestReadCSVSkipsHeader(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(sampleCSV), DefaultSchema())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, TestRecord{
		Row: 1, Timestamp: "t1", Category: "WiFi",
		Latitude: 52, Longitude: 13,
		DownloadMbps: 100, DownloadBytes: 1e6, UploadMbps: 10, UploadBytes: 1e5,
		SourceURL: "https://example.com/r/1",
	}, recs[0])
	assert.Equal(t, "", recs[1].SourceURL)
	assert.Equal(t, "LTE", recs[2].Category)
	assert.Equal(t, 3, recs[2].Row)
}

func TestReadCSVEmpty(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(""), DefaultSchema())
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = ReadCSV(strings.NewReader("only,a,header\n"), DefaultSchema())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseRowsDefaults(t *testing.T) {
	rows := [][]string{
		{"t1", "WiFi", "abc", "13.0", "fast", "", "-3", "x"},
		{"t2"},
		{},
		{"t4", "", " 52.5N", "13.25 ", "12.5Mbps", "1e3", "0.5", ".5"},
	}
	recs := ParseRows(rows, DefaultSchema())
	require.Len(t, recs, len(rows), "no row may be dropped")

	assert.True(t, math.IsNaN(recs[0].Latitude))
	assert.Equal(t, 13.0, recs[0].Longitude)
	assert.False(t, recs[0].HasLocation())
	assert.Zero(t, recs[0].DownloadMbps)
	assert.Zero(t, recs[0].DownloadBytes)
	assert.Zero(t, recs[0].UploadMbps, "negative speeds default to zero")
	assert.Zero(t, recs[0].UploadBytes)

	assert.Equal(t, "t2", recs[1].Timestamp)
	assert.Equal(t, "", recs[1].Category)
	assert.True(t, math.IsNaN(recs[1].Longitude))

	assert.Equal(t, 3, recs[2].Row)

	assert.Equal(t, 52.5, recs[3].Latitude)
	assert.Equal(t, 13.25, recs[3].Longitude)
	assert.Equal(t, 12.5, recs[3].DownloadMbps)
	assert.Equal(t, 1000.0, recs[3].DownloadBytes)
	assert.Equal(t, 0.5, recs[3].UploadMbps)
	assert.Equal(t, 0.5, recs[3].UploadBytes)
	assert.True(t, recs[3].HasLocation())
}

func TestParseRowsRestartable(t *testing.T) {
	rows := [][]string{{"t1", "WiFi", "1", "2"}}
	a := ParseRows(rows, DefaultSchema())
	b := ParseRows(rows, DefaultSchema())
	assert.Equal(t, a, b)
	assert.Len(t, ParseRows(nil, DefaultSchema()), 0)
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"  -1.5e2xyz", -150, true},
		{"+.25", 0.25, true},
		{"7.", 7, true},
		{"1e", 1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"1e999", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestCustomSchema(t *testing.T) {
	s := DefaultSchema()
	s.SourceURL = -1
	s.Category = 8
	recs := ParseRows([][]string{{"t", "x", "1", "2", "3", "4", "5", "6", "LTE", "", "", "", "https://u"}}, s)
	require.Len(t, recs, 1)
	assert.Equal(t, "LTE", recs[0].Category)
	assert.Empty(t, recs[0].SourceURL)
}

func TestLoadCSV(t *testing.T) {
	_, err := LoadCSV("", DefaultSchema())
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), DefaultSchema())
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := filepath.Join(t.TempDir(), "tests.csv")
	require.NoError(t, os.WriteFile(p, []byte(sampleCSV), 0o644))
	recs, err := LoadCSV(p, DefaultSchema())
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}
