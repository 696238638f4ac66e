package speedtest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Extrema holds the fastest and slowest record by download speed.
// Both are nil when nothing was accumulated.
type Extrema struct {
	Fastest *TestRecord
	Slowest *TestRecord
}

// observe applies the strict comparison rule: a later record with an equal
// speed never replaces the one already held.
func (e *Extrema) observe(r *TestRecord) {
	if e.Fastest == nil || r.DownloadMbps > e.Fastest.DownloadMbps {
		e.Fastest = r
	}
	if e.Slowest == nil || r.DownloadMbps < e.Slowest.DownloadMbps {
		e.Slowest = r
	}
}

// CategoryStats summarizes one network category.
//
// Count, AvgDownload, AvgUpload and the extrema cover the geolocated records
// of the category (what the map shows). The All* fields cover every record of
// the category and feed the summary panel. Averages are NaN for an empty track.
type CategoryStats struct {
	ID    string
	Label string

	Count       int
	AvgDownload float64
	AvgUpload   float64
	Extrema

	AllCount          int
	AllAvgDownload    float64
	AllAvgUpload      float64
	AllMedianDownload float64
}

// StatsReport is the aggregate over one loaded record set.
type StatsReport struct {
	TotalRecords       int
	TotalDownloadBytes float64
	TotalUploadBytes   float64
	Global             Extrema
	ByCategory         map[string]*CategoryStats
	// Categories lists the non-empty labels in first-seen order.
	Categories []string
}

type speeds struct {
	down, up []float64
}

func (s *speeds) add(r *TestRecord) {
	s.down = append(s.down, r.DownloadMbps)
	s.up = append(s.up, r.UploadMbps)
}

// Aggregate computes the report in one pass over records. Totals and the
// global extrema include every record; records without a category only
// count toward the totals.
func Aggregate(records []TestRecord) *StatsReport {
	rep := &StatsReport{ByCategory: make(map[string]*CategoryStats)}
	idx := NewCategoryIndex()
	mapped := make(map[string]*speeds)
	all := make(map[string]*speeds)

	for i := range records {
		r := &records[i]
		rep.TotalRecords++
		rep.TotalDownloadBytes += r.DownloadBytes
		rep.TotalUploadBytes += r.UploadBytes
		rep.Global.observe(r)

		if r.Category == "" {
			continue
		}
		cs, ok := rep.ByCategory[r.Category]
		if !ok {
			cs = &CategoryStats{ID: idx.ID(r.Category), Label: r.Category}
			rep.ByCategory[r.Category] = cs
			rep.Categories = append(rep.Categories, r.Category)
			mapped[r.Category] = &speeds{}
			all[r.Category] = &speeds{}
		}
		cs.AllCount++
		all[r.Category].add(r)
		if r.HasLocation() {
			cs.Count++
			mapped[r.Category].add(r)
			cs.observe(r)
		}
	}

	for label, cs := range rep.ByCategory {
		m, a := mapped[label], all[label]
		cs.AvgDownload = mean(m.down)
		cs.AvgUpload = mean(m.up)
		cs.AllAvgDownload = mean(a.down)
		cs.AllAvgUpload = mean(a.up)
		cs.AllMedianDownload = median(a.down)
	}
	return rep
}

// Category returns the stats for label, nil when the label is unknown.
func (r *StatsReport) Category(label string) *CategoryStats {
	if r == nil {
		return nil
	}
	return r.ByCategory[label]
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
