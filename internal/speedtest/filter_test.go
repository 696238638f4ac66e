package speedtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"speedmap/internal/geom"
)

var exampleRegion = geom.Region{MinLat: 50.5, MaxLat: 52.5, MinLng: 11.5, MaxLng: 13.5}

func TestFilterByRegionExample(t *testing.T) {
	got := FilterByRegion(sampleRecords(t), exampleRegion)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "t1", got[0].Timestamp)
		assert.Equal(t, "t2", got[1].Timestamp)
	}
}

func TestFilterByRegionIdempotent(t *testing.T) {
	once := FilterByRegion(sampleRecords(t), exampleRegion)
	twice := FilterByRegion(once, exampleRegion)
	assert.Equal(t, once, twice)
}

func TestFilterByRegionEdgeCases(t *testing.T) {
	assert.Empty(t, FilterByRegion(nil, exampleRegion))

	nan := math.NaN()
	recs := []TestRecord{
		{Timestamp: "nan", Latitude: nan, Longitude: nan},
		{Timestamp: "half", Latitude: 51, Longitude: nan},
		{Timestamp: "on", Latitude: 51, Longitude: 12},
		{Timestamp: "near", Latitude: 51, Longitude: 12.0001},
	}
	world := geom.Region{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}
	got := FilterByRegion(recs, world)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "on", got[0].Timestamp)
	}

	p := geom.LatLng{Lat: 51, Lng: 12}
	point := FilterByRegion(recs, geom.NewRegion(p, p))
	if assert.Len(t, point, 1) {
		assert.Equal(t, "on", point[0].Timestamp)
	}
	assert.Empty(t, FilterByRegion(recs, geom.NewRegion(geom.LatLng{Lat: 10, Lng: 10}, geom.LatLng{Lat: 10, Lng: 10})))
}

func TestFilterByCategories(t *testing.T) {
	recs := sampleRecords(t)
	geo := Geolocated(recs)

	all := FilterByCategories(geo, map[string]bool{"WiFi": true, "LTE": true})
	assert.ElementsMatch(t, geo, all)
	assert.Empty(t, FilterByCategories(geo, map[string]bool{}))
	assert.Empty(t, FilterByCategories(geo, nil))

	lte := FilterByCategories(recs, map[string]bool{"LTE": true, "WiFi": false})
	if assert.Len(t, lte, 1) {
		assert.Equal(t, "t3", lte[0].Timestamp)
	}
}

func TestGeolocatedPreservesOrder(t *testing.T) {
	nan := math.NaN()
	recs := []TestRecord{
		{Row: 1, Latitude: 1, Longitude: 1},
		{Row: 2, Latitude: nan, Longitude: 1},
		{Row: 3, Latitude: 2, Longitude: 2},
	}
	got := Geolocated(recs)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 1, got[0].Row)
		assert.Equal(t, 3, got[1].Row)
	}
	pts := Points(got)
	assert.Equal(t, geom.LatLng{Lat: 2, Lng: 2}, pts[1])
}
