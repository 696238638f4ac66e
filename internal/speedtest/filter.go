package speedtest

import "speedmap/internal/geom"

// FilterByRegion returns the records inside region (inclusive), in input
// order. Records without a valid location never match.
func FilterByRegion(records []TestRecord, region geom.Region) []TestRecord {
	out := make([]TestRecord, 0)
	for _, r := range records {
		if region.Contains(r.Point()) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategories returns the records whose category is enabled, in input
// order. It keeps no state between calls.
func FilterByCategories(records []TestRecord, enabled map[string]bool) []TestRecord {
	out := make([]TestRecord, 0)
	for _, r := range records {
		if enabled[r.Category] {
			out = append(out, r)
		}
	}
	return out
}

// Geolocated returns the records that can take part in spatial operations.
func Geolocated(records []TestRecord) []TestRecord {
	out := make([]TestRecord, 0, len(records))
	for _, r := range records {
		if r.HasLocation() {
			out = append(out, r)
		}
	}
	return out
}

// Points projects records to their coordinates.
func Points(records []TestRecord) []geom.LatLng {
	pts := make([]geom.LatLng, len(records))
	for i, r := range records {
		pts[i] = r.Point()
	}
	return pts
}
