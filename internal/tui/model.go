package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"speedmap/internal/config"
	"speedmap/internal/geom"
	"speedmap/internal/session"
)

type Model struct {
	cfg *config.Config

	width  int
	height int

	showSidebar bool
	showStats   bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string
	pending string // file to load on Init
	loading bool

	// Data
	sess *session.Session
	bbox geom.BBox

	// region query prompt
	queryMode bool
	ta        textarea.Model

	// record popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// selection results table
	showResults bool
	tbl         table.Model

	selStyle lipgloss.Style
}

func New(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		cfg:         cfg,
		showSidebar: false,
		showStats:   true,
		helpVisible: true,
		zoom:        1.0,
		status:      "speedmap ready",
		sess:        session.New(),
		selStyle:    selectionStyle(cfg.SelectionColor),
	}
	m.cwd = cfg.StartDir
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "CSV files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.l.KeyMap.Quit.SetEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "lat1,lng1 lat2,lng2  Enter to select; Esc to cancel."
	m.ta.CharLimit = 128
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	// results table setup
	m.tbl = table.New(table.WithColumns(resultColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath loads path as soon as the program starts.
func NewWithPath(cfg *config.Config, path string) Model {
	m := New(cfg)
	m.pending = path
	return m
}

func (m Model) Init() tea.Cmd {
	if m.pending == "" {
		return nil
	}
	return m.loadPath(m.pending)
}
