package registry

import (
	"testing"

	"github.com/vovakirdan/termtris/internal/core"
)

type stubGame struct{}

func (stubGame) ID() string { return "stub" }
func (stubGame) Title() string { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig) {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen) {}
func (stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("stub_test", func() Game { return stubGame{} })

	g, err := Create("stub_test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Stub" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Stub")
	}

	found := false
	for _, id := range IDs() {
		if id == "stub_test" {
			found = true
		}
	}
	if !found {
		t.Error("IDs() should list the registered game")
	}

	if _, err := CreateReplayable("stub_test"); err == nil {
		t.Error("CreateReplayable() should reject a game without replay support")
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_test", func() Game { return stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup_test", func() Game { return stubGame{} })
}
