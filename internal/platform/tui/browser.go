package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts/formats"
	"github.com/vovakirdan/chainfall/internal/storage"
)

// LayoutStore is the part of the layout library the browser needs.
type LayoutStore interface {
	Layouts() ([]storage.LayoutRecord, error)
	DeleteLayout(id string) (bool, error)
}

const (
	// minWidthForPreview is the width at which the preview sits beside the table.
	minWidthForPreview = 80
	previewCellWidth   = 2
)

// BrowserModel lists stored layouts in a table with a colored preview of
// the highlighted board.
type BrowserModel struct {
	store    LayoutStore
	records  []storage.LayoutRecord
	table    table.Model
	keys     BrowserKeyMap
	help     help.Model
	width    int
	height   int
	status   string
	selected string
	quitting bool
}

// NewBrowserModel creates a browser over the given store.
func NewBrowserModel(store LayoutStore, width, height int) BrowserModel {
	m := BrowserModel{
		store:  store,
		keys:   DefaultBrowserKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Name", Width: 20},
		{Title: "Size", Width: 7},
		{Title: "Colors", Width: 6},
		{Title: "Updated", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches the records and refreshes the table rows.
func (m *BrowserModel) reload() {
	records, err := m.store.Layouts()
	if err != nil {
		m.status = "load failed: " + err.Error()
		records = nil
	}
	m.records = records

	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row{
			rec.ID,
			rec.Name,
			fmt.Sprintf("%dx%d", rec.Width, rec.Height),
			fmt.Sprintf("%d", rec.Colors),
			rec.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(core.Clamp(m.table.Cursor(), 0, core.Max(len(rows)-1, 0)))
	}
}

// current returns the highlighted record, or nil for an empty library.
func (m BrowserModel) current() *storage.LayoutRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return nil
	}
	return &m.records[i]
}

// Init initializes the browser.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if rec := m.current(); rec != nil {
				m.selected = rec.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rec := m.current(); rec != nil {
				id := rec.ID
				if _, err := m.store.DeleteLayout(id); err != nil {
					m.status = "delete failed: " + err.Error()
				} else {
					m.status = "deleted " + id
				}
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.reload()
		m.table.SetCursor(core.Clamp(cursor, 0, core.Max(len(m.records)-1, 0)))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Layouts"))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString("No layouts stored. Use `chainfall layouts import <file|dir>`.\n")
	} else {
		body := m.table.View()
		if preview := m.preview(); preview != "" {
			if m.width >= minWidthForPreview {
				body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", preview)
			} else {
				body = lipgloss.JoinVertical(lipgloss.Left, body, "", preview)
			}
		}
		b.WriteString(body)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// preview renders the highlighted layout as colored blocks.
func (m BrowserModel) preview() string {
	rec := m.current()
	if rec == nil {
		return ""
	}
	return RenderScreen(layoutScreen(*rec))
}

// layoutScreen draws a stored layout into a framed screen buffer.
func layoutScreen(rec storage.LayoutRecord) *core.Screen {
	width := 0
	for _, row := range rec.Rows {
		width = core.Max(width, len(row))
	}

	s := core.NewScreen(width*previewCellWidth+2, len(rec.Rows)+2)
	s.DrawBox(s.Bounds(), core.ColorGray)

	for r, row := range rec.Rows {
		for c := 0; c < len(row); c++ {
			x := 1 + c*previewCellWidth
			y := 1 + r
			color, ok := formats.ParseCell(row[c])
			switch {
			case !ok:
				s.SetColored(x, y, '?', core.ColorBrightRed)
			case color == 0:
				s.SetColored(x+1, y, '·', core.ColorGray)
			default:
				bc := core.BlockColor(int(color))
				s.SetColored(x, y, '█', bc)
				s.SetColored(x+1, y, '█', bc)
			}
		}
	}
	return s
}

// Selected returns the chosen layout ID, or "" if none was chosen.
func (m BrowserModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if the user left without choosing.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// RunLayoutBrowser shows the browser and returns the chosen layout ID.
func RunLayoutBrowser(store LayoutStore, width, height int) (string, error) {
	p := tea.NewProgram(
		NewBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
