package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Region is a canonical lat/lng rectangle. Min <= Max on both axes.
type Region struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewRegion builds the rectangle spanned by two opposite corners, in any order.
func NewRegion(a, b LatLng) Region {
	r := Region{MinLat: a.Lat, MaxLat: b.Lat, MinLng: a.Lng, MaxLng: b.Lng}
	if r.MinLat > r.MaxLat {
		r.MinLat, r.MaxLat = r.MaxLat, r.MinLat
	}
	if r.MinLng > r.MaxLng {
		r.MinLng, r.MaxLng = r.MaxLng, r.MinLng
	}
	return r
}

// Contains is an inclusive membership test. Invalid points are never inside.
func (r Region) Contains(p LatLng) bool {
	if !p.Valid() {
		return false
	}
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat && p.Lng >= r.MinLng && p.Lng <= r.MaxLng
}

// Degenerate reports a zero-width or zero-height rectangle.
func (r Region) Degenerate() bool {
	return r.MinLat == r.MaxLat || r.MinLng == r.MaxLng
}

func (r Region) String() string {
	return fmt.Sprintf("lat [%.5f, %.5f] lng [%.5f, %.5f]", r.MinLat, r.MaxLat, r.MinLng, r.MaxLng)
}

// ParseRegion parses two corners written as "lat1,lng1 lat2,lng2".
// Any mix of commas, semicolons and whitespace separates the four numbers.
func ParseRegion(s string) (Region, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return Region{}, errors.New("region: want 4 numbers: lat1,lng1 lat2,lng2")
	}
	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Region{}, fmt.Errorf("region: %q: %w", f, err)
		}
		v[i] = x
	}
	a := LatLng{Lat: v[0], Lng: v[1]}
	b := LatLng{Lat: v[2], Lng: v[3]}
	if !a.Valid() || !b.Valid() {
		return Region{}, errors.New("region: corners must be finite")
	}
	return NewRegion(a, b), nil
}
