package registry

import (
	"testing"

	"github.com/vovakirdan/chainfall/internal/core"
)

type stubGame struct {
	id    string
	ticks uint64
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.ticks = 0 }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{Tick: g.ticks} }
func (g *stubGame) Step() core.StepResult {
	g.ticks++
	return core.StepResult{State: g.State()}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}

	g1, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("stub_a")
	g1.Step()
	if g2.State().Tick != 0 {
		t.Error("Create should return independent instances")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	idxA, idxB := -1, -1
	for i, id := range ids {
		switch id {
		case "stub_a":
			idxA = i
		case "stub_b":
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Errorf("List() should be sorted by ID, got %v", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}
	if Exists("no_such_game") {
		t.Error("Exists() should be false for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
