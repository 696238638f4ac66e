package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"speedmap/internal/geom"
	"speedmap/internal/log"
	"speedmap/internal/speedtest"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// fileLoadedMsg is delivered exactly once per loadPath command.
type fileLoadedMsg struct {
	path    string
	records []speedtest.TestRecord
	err     error
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.ToLower(filepath.Ext(name)) != ".csv" {
			continue
		}
		desc := ""
		if info, err := e.Info(); err == nil {
			desc = fmt.Sprintf("%d bytes", info.Size())
		}
		items = append(items, fileItem{title: name, desc: desc, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no CSV files in current directory"
	}
}

// loadPath reads and parses p off the update loop.
func (m Model) loadPath(p string) tea.Cmd {
	schema := m.cfg.Columns
	return func() tea.Msg {
		recs, err := speedtest.LoadCSV(p, schema)
		return fileLoadedMsg{path: p, records: recs, err: err}
	}
}

// applyLoaded swaps in the session for a finished load. A failed load keeps
// the current session.
func (m *Model) applyLoaded(msg fileLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, speedtest.ErrNoFile) {
			m.status = msg.err.Error()
			return
		}
		log.Errorw("load failed", "path", msg.path, "error", msg.err)
		m.status = "load error: " + msg.err.Error()
		return
	}
	m.selPath = msg.path
	m.sess.Load(msg.path, msg.records)
	m.bbox = m.dataBounds()
	log.Debugf("projection bounds %+v", m.bbox)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.showResults = false
	m.tbl.SetRows(nil)
	rep := m.sess.Report()
	m.status = "loaded: " + filepath.Base(msg.path) +
		fmt.Sprintf("  records=%d mapped=%d categories=%d", rep.TotalRecords, len(m.sess.Mapped()), len(rep.Categories))
}

// dataBounds is the projection box for the mapped records.
func (m Model) dataBounds() geom.BBox {
	b, ok := m.sess.Bounds()
	if !ok {
		return geom.BBox{}
	}
	return b.Padded(0.01)
}
