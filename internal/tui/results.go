package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"speedmap/internal/session"
	"speedmap/internal/speedtest"
)

func resultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Date", Width: 20},
		{Title: "Network", Width: 10},
		{Title: "Download", Width: 14},
		{Title: "Upload", Width: 14},
	}
}

func resultRows(recs []speedtest.TestRecord) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Row),
			r.Timestamp,
			r.Category,
			mbps(r.DownloadMbps),
			mbps(r.UploadMbps),
		})
	}
	return rows
}

// showResult fills the results table with a query outcome and opens it.
func (m *Model) showResult(res *session.Result) {
	// clear rows before touching columns to avoid a transient mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(resultColumns())
	m.tbl.SetRows(resultRows(res.Records))
	m.tbl.GotoTop()
	m.showResults = true
	m.inspectPopup = ""
	m.status = fmt.Sprintf("selection: %d records in %s", len(res.Records), res.Region)
}

func (m *Model) closeResult() {
	m.showResults = false
	m.sess.CloseResult()
}

// recordPopup is the marker popup of one record.
func recordPopup(r speedtest.TestRecord) string {
	network := r.Category
	if network == "" {
		network = "(none)"
	}
	lines := []string{
		fmt.Sprintf("Date: %s", r.Timestamp),
		fmt.Sprintf("Download Speed: %s", mbps(r.DownloadMbps)),
		fmt.Sprintf("Upload Speed: %s", mbps(r.UploadMbps)),
		fmt.Sprintf("Network: %s", network),
		fmt.Sprintf("Position: %.5f, %.5f", r.Latitude, r.Longitude),
	}
	if r.SourceURL != "" {
		lines = append(lines, "Link: "+r.SourceURL)
	}
	return strings.Join(lines, "\n")
}
