// Package session owns the state derived from one loaded speed-test file.
//
// A Session is replaced wholesale on every load: records, statistics,
// category toggles, selection rectangles and the last selection result all
// belong to the file they were derived from.
package session

import (
	"speedmap/internal/geom"
	"speedmap/internal/log"
	"speedmap/internal/selection"
	"speedmap/internal/speedtest"
)

// Toggle is the visibility control of one category on the map.
type Toggle struct {
	ID      string
	Label   string
	Enabled bool
	Count   int // geolocated records in the category
}

// Result is the outcome of one spatial query.
type Result struct {
	Region  geom.Region
	Records []speedtest.TestRecord
}

// Session is the state derived from one loaded file.
type Session struct {
	path    string
	records []speedtest.TestRecord
	mapped  []speedtest.TestRecord
	report  *speedtest.StatsReport
	index   *speedtest.CategoryIndex

	labels  []string
	counts  map[string]int
	enabled map[string]bool
	visible []speedtest.TestRecord

	gesture selection.Gesture
	result  *Result
}

// New returns a session with no file loaded.
func New() *Session {
	s := &Session{}
	s.Load("", nil)
	return s
}

// Load replaces everything derived from the previous file. Selection mode
// itself survives a reload; its rectangles do not.
func (s *Session) Load(path string, records []speedtest.TestRecord) {
	s.path = path
	s.records = records
	s.mapped = speedtest.Geolocated(records)
	s.report = speedtest.Aggregate(records)
	s.index = speedtest.NewCategoryIndex()
	s.labels = nil
	s.counts = make(map[string]int)
	s.enabled = make(map[string]bool)
	for _, r := range records {
		s.index.ID(r.Category)
	}
	for _, r := range s.mapped {
		if _, seen := s.counts[r.Category]; !seen {
			s.labels = append(s.labels, r.Category)
			s.enabled[r.Category] = true
		}
		s.counts[r.Category]++
	}
	s.gesture.Reset()
	s.result = nil
	s.recompute()
	if path != "" {
		log.Infow("session loaded",
			"path", path,
			"records", len(records),
			"geolocated", len(s.mapped),
			"categories", len(s.labels))
	}
}

func (s *Session) Path() string { return s.path }
func (s *Session) Records() []speedtest.TestRecord { return s.records }
func (s *Session) Mapped() []speedtest.TestRecord { return s.mapped }
func (s *Session) Report() *speedtest.StatsReport { return s.report }
func (s *Session) Visible() []speedtest.TestRecord { return s.visible }
func (s *Session) Gesture() *selection.Gesture { return &s.gesture }

// Enabled reports whether label is currently shown on the map.
func (s *Session) Enabled(label string) bool { return s.enabled[label] }

// Bounds is the extent of the geolocated records; ok=false when there are none.
func (s *Session) Bounds() (geom.BBox, bool) {
	return geom.Extent(speedtest.Points(s.mapped))
}

// Toggles lists one control per category present on the map, in first-seen
// order. Geolocated records without a category get a control too, so that
// enabling everything shows every mapped record.
func (s *Session) Toggles() []Toggle {
	out := make([]Toggle, 0, len(s.labels))
	for _, l := range s.labels {
		out = append(out, Toggle{
			ID:      s.index.ID(l),
			Label:   l,
			Enabled: s.enabled[l],
			Count:   s.counts[l],
		})
	}
	return out
}

// ToggleCategory flips one category by identifier and returns the new
// visible set.
func (s *Session) ToggleCategory(id string) []speedtest.TestRecord {
	label, ok := s.index.Label(id)
	if !ok {
		log.Warnw("unknown category id", "id", id)
		return s.visible
	}
	s.enabled[label] = !s.enabled[label]
	log.Debugw("category toggled", "category", label, "enabled", s.enabled[label])
	return s.recompute()
}

// SetAll enables or disables every category and returns the visible set.
func (s *Session) SetAll(on bool) []speedtest.TestRecord {
	for _, l := range s.labels {
		s.enabled[l] = on
	}
	return s.recompute()
}

// AllEnabled reports whether every category is currently shown.
func (s *Session) AllEnabled() bool {
	for _, l := range s.labels {
		if !s.enabled[l] {
			return false
		}
	}
	return true
}

func (s *Session) recompute() []speedtest.TestRecord {
	s.visible = speedtest.FilterByCategories(s.mapped, s.enabled)
	return s.visible
}

// ToggleSelectionMode flips selection mode; switching it off clears the
// drawn rectangles.
func (s *Session) ToggleSelectionMode() bool {
	on := s.gesture.Toggle()
	log.Debugw("selection mode", "enabled", on)
	return on
}

func (s *Session) PointerDown(p geom.LatLng) bool { return s.gesture.Begin(p) }
func (s *Session) PointerMove(p geom.LatLng) bool { return s.gesture.Move(p) }

// PointerUp commits the active rectangle and queries every loaded record
// against it. ok is false when no drag was in progress.
func (s *Session) PointerUp() (*Result, bool) {
	r, ok := s.gesture.End()
	if !ok {
		return nil, false
	}
	return s.Query(r), true
}

// Query runs the containment filter over the whole record set and keeps
// the outcome as the current result.
func (s *Session) Query(r geom.Region) *Result {
	s.result = &Result{Region: r, Records: speedtest.FilterByRegion(s.records, r)}
	log.Infow("selection", "region", r.String(), "matches", len(s.result.Records))
	return s.result
}

// Result returns the last query outcome, nil when none is open.
func (s *Session) Result() *Result { return s.result }

// CloseResult dismisses the last query outcome.
func (s *Session) CloseResult() { s.result = nil }

// ClearSelection removes the drawn rectangles.
func (s *Session) ClearSelection() { s.gesture.Clear() }
