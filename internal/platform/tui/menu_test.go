package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return nm
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(testRuntime())
	if !strings.Contains(m.View(), stubID) {
		t.Errorf("menu should list %q", stubID)
	}
}

func TestMenuNavigationClamps(t *testing.T) {
	m := NewMenuModel(testRuntime())

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	for range len(m.items) + 3 {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testRuntime())
	for i, item := range m.items {
		if item.ID == stubID {
			m.cursor = i
		}
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().ID != stubID {
		t.Fatalf("Selected() = %v, want %s", m.Selected(), stubID)
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(testRuntime())
	m = updateMenu(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(testRuntime())
	m = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("config = %dx%d, want 120x50", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestSessionMenuToWatchAndBack(t *testing.T) {
	s := NewSessionModel(testRuntime(), "")
	if s.InWatch() {
		t.Fatal("session should start in the menu")
	}
	for i, item := range s.menu.items {
		if item.ID == stubID {
			s.menu.cursor = i
		}
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if !s.InWatch() {
		t.Fatal("enter should open the watch view")
	}
	if cmd == nil {
		t.Error("opening the watch view should start ticking")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.InWatch() {
		t.Error("esc should return to the menu")
	}
	if s.menu.Selected() != nil {
		t.Error("menu should be fresh after returning")
	}
}

func TestSessionReopenedWatchIgnoresOldTicks(t *testing.T) {
	s := NewSessionModel(testRuntime(), "")
	open := func() {
		t.Helper()
		for i, item := range s.menu.items {
			if item.ID == stubID {
				s.menu.cursor = i
			}
		}
		next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		s = next.(SessionModel)
		if !s.InWatch() {
			t.Fatal("enter should open the watch view")
		}
	}

	open()
	oldTick := TickMsg{Gen: s.watch.gen}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)

	next, cmd := s.Update(oldTick)
	s = next.(SessionModel)
	if cmd != nil {
		t.Error("a tick in the menu must not restart a loop")
	}

	open()
	game := s.watch.game.(*stubGame)

	next, cmd = s.Update(oldTick)
	s = next.(SessionModel)
	if cmd != nil || game.ticks != 0 {
		t.Errorf("old loop tick: cmd=%v ticks=%d, want nil and 0", cmd != nil, game.ticks)
	}

	_, cmd = s.Update(TickMsg{Gen: s.watch.gen})
	if cmd == nil || game.ticks != 1 {
		t.Errorf("own tick: cmd=%v ticks=%d, want a cmd and 1", cmd != nil, game.ticks)
	}
}

func TestSessionFixedVariant(t *testing.T) {
	s := NewSessionModel(testRuntime(), stubID)
	if !s.InWatch() {
		t.Fatal("fixed variant should skip the menu")
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if !s.InWatch() {
		t.Error("back is disabled for a fixed variant")
	}

	next, _ = s.Update(runeKey('q'))
	if next.(SessionModel).View() != "" {
		t.Error("q should end the session")
	}
}
