package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists(zz_stub_a) = false, want true")
	}
	if Exists("zz_missing") {
		t.Error("Exists(zz_missing) = true, want false")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("ID() = %q, want %q", g.ID(), "zz_stub_a")
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create(zz_missing) should fail")
	}

	var seenA, seenB int
	for i, info := range List() {
		switch info.ID {
		case "zz_stub_a":
			seenA = i + 1
			if info.Title != "Stub zz_stub_a" {
				t.Errorf("Title = %q, want %q", info.Title, "Stub zz_stub_a")
			}
		case "zz_stub_b":
			seenB = i + 1
		}
	}
	if seenA == 0 || seenB == 0 || seenA > seenB {
		t.Errorf("List() not sorted by id: a at %d, b at %d", seenA, seenB)
	}
	if ids := IDs(); len(ids) != len(List()) {
		t.Errorf("IDs() returned %d ids, List() %d", len(ids), len(List()))
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Register() with duplicate id should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
