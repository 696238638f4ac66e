package speedtest

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(t *testing.T) []TestRecord {
	t.Helper()
	recs, err := ReadCSV(strings.NewReader(sampleCSV), DefaultSchema())
	require.NoError(t, err)
	return recs
}

func TestAggregateExample(t *testing.T) {
	rep := Aggregate(sampleRecords(t))

	assert.Equal(t, 3, rep.TotalRecords)
	assert.InDelta(t, 2.2e6, rep.TotalDownloadBytes, 1e-6)
	assert.InDelta(t, 2.3e5, rep.TotalUploadBytes, 1e-6)
	assert.Equal(t, []string{"WiFi", "LTE"}, rep.Categories)

	wifi := rep.Category("WiFi")
	require.NotNil(t, wifi)
	assert.Equal(t, 2, wifi.Count)
	assert.Equal(t, 2, wifi.AllCount)
	require.NotNil(t, wifi.Fastest)
	assert.Equal(t, 100.0, wifi.Fastest.DownloadMbps)
	assert.Equal(t, 50.0, wifi.Slowest.DownloadMbps)
	assert.Equal(t, 75.0, wifi.AvgDownload)
	assert.Equal(t, 7.5, wifi.AvgUpload)
	assert.Equal(t, 50.0, wifi.AllMedianDownload, "lower median")
	assert.NotEmpty(t, wifi.ID)
	assert.NotEqual(t, wifi.ID, rep.Category("LTE").ID)

	assert.Equal(t, "t1", rep.Global.Fastest.Timestamp)
	assert.Equal(t, "t2", rep.Global.Slowest.Timestamp)
	assert.Nil(t, rep.Category("5G"))
}

func TestAggregateTieBreakFirstSeenWins(t *testing.T) {
	recs := []TestRecord{
		{Timestamp: "A", Category: "WiFi", Latitude: 1, Longitude: 1, DownloadMbps: 50},
		{Timestamp: "B", Category: "WiFi", Latitude: 2, Longitude: 2, DownloadMbps: 50},
	}
	rep := Aggregate(recs)
	wifi := rep.Category("WiFi")
	assert.Equal(t, "A", wifi.Fastest.Timestamp)
	assert.Equal(t, "A", wifi.Slowest.Timestamp)
	assert.Equal(t, "A", rep.Global.Fastest.Timestamp)
	assert.Equal(t, "A", rep.Global.Slowest.Timestamp)
}

func TestAggregateCountsEveryRow(t *testing.T) {
	nan := math.NaN()
	recs := []TestRecord{
		{Category: "", Latitude: 1, Longitude: 1, DownloadBytes: 10, UploadBytes: 1},
		{Category: "LTE", Latitude: nan, Longitude: nan, DownloadMbps: 80, DownloadBytes: 20, UploadBytes: 2},
		{Category: "LTE", Latitude: 3, Longitude: 3, DownloadMbps: 20, UploadMbps: 4, DownloadBytes: 30, UploadBytes: 3},
	}
	rep := Aggregate(recs)
	assert.Equal(t, 3, rep.TotalRecords)
	assert.Equal(t, 60.0, rep.TotalDownloadBytes)
	assert.Equal(t, 6.0, rep.TotalUploadBytes)
	assert.Equal(t, []string{"LTE"}, rep.Categories, "empty category is not grouped")

	lte := rep.Category("LTE")
	assert.Equal(t, 1, lte.Count)
	assert.Equal(t, 2, lte.AllCount)
	assert.Equal(t, 20.0, lte.Fastest.DownloadMbps, "extrema only see geolocated rows")
	assert.Equal(t, 20.0, lte.AvgDownload)
	assert.Equal(t, 50.0, lte.AllAvgDownload)
	assert.Equal(t, 2.0, lte.AllAvgUpload)

	assert.Equal(t, 80.0, rep.Global.Fastest.DownloadMbps, "global extrema see every row")
}

func TestAggregateCategoryWithoutLocations(t *testing.T) {
	nan := math.NaN()
	rep := Aggregate([]TestRecord{{Category: "5G", Latitude: nan, Longitude: nan, DownloadMbps: 300}})
	g := rep.Category("5G")
	require.NotNil(t, g)
	assert.Zero(t, g.Count)
	assert.Nil(t, g.Fastest)
	assert.Nil(t, g.Slowest)
	assert.True(t, math.IsNaN(g.AvgDownload))
	assert.True(t, math.IsNaN(g.AvgUpload))
	assert.Equal(t, 300.0, g.AllAvgDownload)
}

func TestAggregateEmpty(t *testing.T) {
	rep := Aggregate(nil)
	assert.Zero(t, rep.TotalRecords)
	assert.Nil(t, rep.Global.Fastest)
	assert.Empty(t, rep.ByCategory)
}

func TestCategoryCountMatchesVisibilityFilter(t *testing.T) {
	nan := math.NaN()
	recs := append(sampleRecords(t),
		TestRecord{Category: "WiFi", Latitude: nan, Longitude: 4},
		TestRecord{Category: "LTE", Latitude: 49, Longitude: 10},
	)
	rep := Aggregate(recs)
	geo := Geolocated(recs)
	for _, label := range rep.Categories {
		n := len(FilterByCategories(geo, map[string]bool{label: true}))
		assert.Equal(t, n, rep.Category(label).Count, label)
	}
}

func TestCategoryIndexStable(t *testing.T) {
	a, b := NewCategoryIndex(), NewCategoryIndex()
	id := a.ID(`Wi"Fi <5GHz>`)
	assert.Equal(t, id, b.ID(`Wi"Fi <5GHz>`))
	assert.Regexp(t, `^[0-9a-f-]{36}$`, id)
	label, ok := a.Label(id)
	assert.True(t, ok)
	assert.Equal(t, `Wi"Fi <5GHz>`, label)
	_, ok = b.Label("nope")
	assert.False(t, ok)
}
