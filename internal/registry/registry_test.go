package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists(zz_stub_a) = false")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("ID() = %q, expected zz_stub_b", g.ID())
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_stub_a":
			ia = i
		case "zz_stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() order = %v, expected sorted IDs", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
