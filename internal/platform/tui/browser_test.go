package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chainfall/internal/storage"
)

type memStore struct {
	records []storage.LayoutRecord
	err     error
}

func (s *memStore) Layouts() ([]storage.LayoutRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]storage.LayoutRecord(nil), s.records...), nil
}

func (s *memStore) DeleteLayout(id string) (bool, error) {
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newMemStore() *memStore {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &memStore{records: []storage.LayoutRecord{
		{ID: "alpha", Name: "Alpha", Width: 3, Height: 2, Colors: 2, Rows: []string{"...", "1.2"}, UpdatedAt: now},
		{ID: "beta", Name: "Beta", Width: 2, Height: 2, Colors: 1, Rows: []string{"..", "11"}, UpdatedAt: now},
	}}
}

func updateBrowser(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update returned %T, want BrowserModel", next)
	}
	return nm
}

func TestBrowserListsRecords(t *testing.T) {
	m := NewBrowserModel(newMemStore(), 100, 30)
	view := m.View()
	for _, want := range []string{"alpha", "Beta", "3x2", "Mar 01"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowserEmpty(t *testing.T) {
	m := NewBrowserModel(&memStore{}, 100, 30)
	if !strings.Contains(m.View(), "No layouts stored") {
		t.Error("empty library should say so")
	}

	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != "" {
		t.Error("nothing to select in an empty library")
	}
}

func TestBrowserLoadError(t *testing.T) {
	m := NewBrowserModel(&memStore{err: errors.New("boom")}, 100, 30)
	if !strings.Contains(m.View(), "load failed: boom") {
		t.Error("load error should be shown")
	}
}

func TestBrowserSelect(t *testing.T) {
	m := NewBrowserModel(newMemStore(), 100, 30)
	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Selected(); got != "beta" {
		t.Errorf("Selected() = %q, want beta", got)
	}
}

func TestBrowserDelete(t *testing.T) {
	store := newMemStore()
	m := NewBrowserModel(store, 100, 30)

	m = updateBrowser(t, m, runeKey('x'))

	if len(store.records) != 1 || store.records[0].ID != "beta" {
		t.Fatalf("records after delete = %+v", store.records)
	}
	if len(m.records) != 1 {
		t.Errorf("browser shows %d records, want 1", len(m.records))
	}
	if !strings.Contains(m.View(), "deleted alpha") {
		t.Error("view should confirm the delete")
	}
}

func TestBrowserDeleteLastRowKeepsCursor(t *testing.T) {
	store := newMemStore()
	m := NewBrowserModel(store, 100, 30)

	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateBrowser(t, m, runeKey('x'))

	if got := m.table.Cursor(); got != 0 {
		t.Errorf("cursor after deleting the last row = %d, want 0", got)
	}
	if rec := m.current(); rec == nil || rec.ID != "alpha" {
		t.Errorf("current() = %+v, want alpha", rec)
	}

	m = updateBrowser(t, m, runeKey('x'))
	if m.current() != nil {
		t.Error("empty library should have no current record")
	}
}

func TestBrowserResizeKeepsCursor(t *testing.T) {
	m := NewBrowserModel(newMemStore(), 100, 30)
	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateBrowser(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	if rec := m.current(); rec == nil || rec.ID != "beta" {
		t.Errorf("current() after resize = %+v, want beta", rec)
	}
}

func TestBrowserQuit(t *testing.T) {
	m := NewBrowserModel(newMemStore(), 100, 30)
	m = updateBrowser(t, m, runeKey('q'))
	if !m.IsQuitting() || m.Selected() != "" {
		t.Error("q should quit without a selection")
	}
}

func TestLayoutScreen(t *testing.T) {
	s := layoutScreen(storage.LayoutRecord{Rows: []string{"1.", "?2"}})

	if s.Width() != 6 || s.Height() != 4 {
		t.Fatalf("screen = %dx%d, want 6x4", s.Width(), s.Height())
	}
	if got := s.Get(1, 1); got != '█' {
		t.Errorf("colored cell = %q", got)
	}
	if got := s.Get(4, 1); got != '·' {
		t.Errorf("empty cell = %q", got)
	}
	if got := s.Get(1, 2); got != '?' {
		t.Errorf("invalid cell = %q", got)
	}
}
