package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"speedmap/internal/speedtest"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := " speedmap ─ speed-test map "
	if m.loading {
		title += "(loading…) "
	}
	if m.sess.Gesture().Enabled() {
		title += "[select] "
	}
	header := lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showResults:
		maxW := min(lo.mapW, 80)
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(max(3, min(lo.mapH-4, 20)))
		box := boxStyle.Width(maxW).Render(titleStyle.Render("Test results") + "\n" + m.tbl.View() + "\n" + dimStyle.Render("esc close"))
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.queryMode:
		m.ta.SetWidth(min(lo.mapW-4, 60))
		box := boxStyle.Render(titleStyle.Render("Region query") + "\n" + m.ta.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.inspectPopup != "":
		maxPopupW := max(20, min(60, lo.mapW-2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	// Body row
	cols := []string{}
	if m.showSidebar {
		cols = append(cols, sidebar, " ")
	}
	cols = append(cols, mapView)
	if m.showStats {
		cols = append(cols, lipgloss.NewStyle().Width(statsWidth).Height(lo.contentH).MaxHeight(lo.contentH).Render(m.renderStats(statsWidth-4)))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lat=%.5f lng=%.5f  ", m.hoverLat, m.hoverLon))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// renderStats draws the statistics panel with the category toggles.
func (m Model) renderStats(w int) string {
	rep := m.sess.Report()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics") + "\n")
	if m.sess.Path() == "" {
		b.WriteString(dimStyle.Render("no file loaded\nTab to browse"))
		return boxStyle.Render(b.String())
	}
	fmt.Fprintf(&b, "Tests:    %d\n", rep.TotalRecords)
	fmt.Fprintf(&b, "Download: %s\n", bytesLabel(rep.TotalDownloadBytes))
	fmt.Fprintf(&b, "Upload:   %s\n", bytesLabel(rep.TotalUploadBytes))
	b.WriteString(extremaLines(rep.Global, w))

	toggles := m.sess.Toggles()
	if len(toggles) > 0 {
		b.WriteString("\n" + titleStyle.Render("Map categories") + "\n")
	}
	for i, t := range toggles {
		line := fmt.Sprintf("%s %s (%d)", keyLabel(i), truncate(categoryName(t.Label), w-12), t.Count)
		if t.Enabled {
			b.WriteString(line + "\n")
		} else {
			b.WriteString(offStyle.Render(line) + "\n")
		}
	}

	for _, label := range rep.Categories {
		cs := rep.Category(label)
		b.WriteString("\n" + titleStyle.Render(truncate(label, w)) + "\n")
		fmt.Fprintf(&b, "Tests: %d (%d on map)\n", cs.AllCount, cs.Count)
		fmt.Fprintf(&b, "Avg ↓ %s\n", mbps(cs.AllAvgDownload))
		fmt.Fprintf(&b, "Avg ↑ %s\n", mbps(cs.AllAvgUpload))
		fmt.Fprintf(&b, "Median ↓ %s\n", mbps(cs.AllMedianDownload))
		b.WriteString(extremaLines(cs.Extrema, w))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func extremaLines(e speedtest.Extrema, w int) string {
	line := func(name string, r *speedtest.TestRecord) string {
		if r == nil {
			return padRight(name, 9) + "n/a\n"
		}
		return truncate(fmt.Sprintf("%s%s @ %s", padRight(name, 9), mbps(r.DownloadMbps), r.Timestamp), w) + "\n"
	}
	return line("Fastest:", e.Fastest) + line("Slowest:", e.Slowest)
}

func bytesLabel(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return "0 B"
	}
	if v >= math.MaxUint64 {
		return humanize.Bytes(math.MaxUint64)
	}
	return humanize.Bytes(uint64(v))
}

func keyLabel(i int) string {
	if i < 9 {
		return fmt.Sprintf("[%d]", i+1)
	}
	return "[ ]"
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab files",
		"Enter open",
		"1-9 category",
		"l all",
		"s select",
		"x clear",
		"r region",
		"i inspect",
		"t stats",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
