package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"speedmap/internal/geom"
	"speedmap/internal/log"
	"speedmap/internal/speedtest"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case fileLoadedMsg:
		m.applyLoaded(msg)
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.queryMode {
			return m.updateQuery(msg)
		}
		if m.showResults {
			switch msg.String() {
			case "esc", "enter":
				m.closeResult()
				m.status = "results closed"
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.inspectPopup = ""
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.toggleCategory(int(key[0] - '1'))
		case "l":
			// toggle all categories
			m.sess.SetAll(!m.sess.AllEnabled())
			m.status = fmt.Sprintf("categories: all %s (%d visible)", onOff(m.sess.AllEnabled()), len(m.sess.Visible()))
		case "s":
			on := m.sess.ToggleSelectionMode()
			m.status = "selection mode: " + onOff(on)
			if on {
				m.status += "  drag on the map to select"
			}
		case "x":
			m.sess.ClearSelection()
			m.status = "selection cleared"
		case "r":
			m.queryMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "region query"
		case "t":
			m.showStats = !m.showStats
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "i":
			if r, ok := m.inspectNearest(); ok {
				m.inspectPopup = recordPopup(r)
				m.status = "record popup"
			} else {
				m.inspectPopup = ""
				m.status = "no record nearby"
			}
		case "enter":
			if m.showSidebar {
				return m.openSelected()
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openSelected starts loading the file under the sidebar cursor.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	p := ""
	if it, ok := m.l.SelectedItem().(fileItem); ok {
		p = it.path
	}
	if p == "" {
		m.status = speedtest.ErrNoFile.Error()
		return m, nil
	}
	m.loading = true
	m.status = "loading " + p + " ..."
	log.Debugw("load requested", "path", p)
	return m, m.loadPath(p)
}

func (m Model) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.queryMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		q := strings.TrimSpace(m.ta.Value())
		if q == "" {
			m.status = "query: empty"
			return m, nil
		}
		r, err := geom.ParseRegion(q)
		if err != nil {
			m.status = "query error: " + err.Error()
			return m, nil
		}
		m.queryMode = false
		m.ta.Blur()
		m.showResult(m.sess.Query(r))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) toggleCategory(i int) {
	toggles := m.sess.Toggles()
	if i < 0 || i >= len(toggles) {
		return
	}
	t := toggles[i]
	vis := m.sess.ToggleCategory(t.ID)
	m.status = fmt.Sprintf("%s: %s (%d visible)", categoryName(t.Label), onOff(m.sess.Enabled(t.Label)), len(vis))
}

// handleMouse tracks hover and drives the selection gesture. Motion only
// reaches the gesture while it is tracking a drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}
	inside := lo.inMap(msg.X, msg.Y)
	var p geom.LatLng
	hasGeo := false
	if inside {
		m.hovering = true
		m.hoverCellX = msg.X - lo.mapX
		m.hoverCellY = msg.Y - lo.mapY
		if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, lo.mapW, lo.mapH); ok {
			p = geom.LatLng{Lat: lat, Lng: lon}
			hasGeo = true
		}
	} else {
		m.hovering = false
	}
	m.hoverHasGeo = hasGeo
	m.hoverLat, m.hoverLon = p.Lat, p.Lng

	if m.showResults || m.queryMode {
		return
	}
	g := m.sess.Gesture()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && hasGeo && m.sess.PointerDown(p) {
			m.status = "selecting..."
		}
	case tea.MouseActionMotion:
		if g.Tracking() && hasGeo {
			m.sess.PointerMove(p)
		}
	case tea.MouseActionRelease:
		if !g.Tracking() {
			return
		}
		if hasGeo {
			m.sess.PointerMove(p)
		}
		if res, ok := m.sess.PointerUp(); ok {
			m.showResult(res)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func categoryName(label string) string {
	if label == "" {
		return "(none)"
	}
	return label
}
