package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/termtris/internal/core"
)

func newTestGame(seed int64, tickRate int) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		ScreenW:           80,
		ScreenH:           24,
		TickRate:          tickRate,
		Seed:              seed,
		CelebrationFrames: 5,
	})
	return g
}

func frameOf(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Push(a)
	}
	return in
}

// playUntilOver steps with no input until the stack tops out.
func playUntilOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 100000; i++ {
		res := g.Step(core.NewInputFrame())
		if res.State.GameOver {
			return res
		}
	}
	t.Fatal("game never ended")
	return core.StepResult{}
}

func TestFramesPerDrop(t *testing.T) {
	tests := []struct {
		level, tickRate, expected int
	}{
		{0, 20, 20},
		{1, 20, 16},
		{5, 20, 7},
		{10, 20, 2},
		{0, 60, 60},
		{0, 1, 1},
		{10, 5, 1}, // 100ms at 5 fps rounds down to zero
		{99, 20, 2},
	}

	for _, tc := range tests {
		result := FramesPerDrop(tc.level, tc.tickRate)
		if result != tc.expected {
			t.Errorf("FramesPerDrop(%d, %d) = %d, expected %d", tc.level, tc.tickRate, result, tc.expected)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(12345, 20)
	g2 := newTestGame(12345, 20)

	script := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionRight, core.ActionDown, core.ActionNone}
	for i := 0; i < 3000; i++ {
		in := frameOf(script[i%len(script)])
		g1.Step(in)
		g2.Step(in)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
	if g1.Dump() != g2.Dump() {
		t.Errorf("Boards differ:\n%s\n%s", g1.Dump(), g2.Dump())
	}
}

func TestGravityCadence(t *testing.T) {
	g := newTestGame(1, 20)
	startY := g.eng.Active().Origin.Y

	for i := 1; i < FramesPerDrop(0, 20); i++ {
		g.Step(core.NewInputFrame())
		if y := g.eng.Active().Origin.Y; y != startY {
			t.Fatalf("piece fell early at frame %d", i)
		}
	}

	g.Step(core.NewInputFrame())
	if y := g.eng.Active().Origin.Y; y != startY+1 {
		t.Errorf("after %d frames origin y = %d, expected %d", FramesPerDrop(0, 20), y, startY+1)
	}
	if g.Frame() != uint64(FramesPerDrop(0, 20)) {
		t.Errorf("Frame() = %d, expected %d", g.Frame(), FramesPerDrop(0, 20))
	}
}

func TestIntentsApplyInOrder(t *testing.T) {
	g := newTestGame(7, 20)
	x := g.eng.Active().Origin.X

	// Left before pause lands, left after pause is dropped.
	g.Step(frameOf(core.ActionLeft, core.ActionPause, core.ActionLeft))
	if got := g.eng.Active().Origin.X; got != x-1 {
		t.Errorf("origin x = %d, expected %d", got, x-1)
	}
	if !g.State().Paused {
		t.Error("game should be paused")
	}

	g.Step(frameOf(core.ActionPause, core.ActionRight, core.ActionRight))
	if got := g.eng.Active().Origin.X; got != x+1 {
		t.Errorf("origin x = %d, expected %d", got, x+1)
	}
	if g.State().Paused {
		t.Error("game should be running")
	}
}

func TestPauseStopsGravity(t *testing.T) {
	g := newTestGame(3, 1)
	g.Step(frameOf(core.ActionPause))
	y := g.eng.Active().Origin.Y

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.eng.Active().Origin.Y; got != y {
		t.Errorf("paused piece moved from y=%d to y=%d", y, got)
	}

	g.Step(frameOf(core.ActionPause))
	if got := g.eng.Active().Origin.Y; got != y+1 {
		t.Errorf("unpaused piece y = %d, expected %d", got, y+1)
	}
}

func TestCelebrationFreezesPlay(t *testing.T) {
	g := newTestGame(3, 1)
	g.celebrating = 3
	start := g.eng.Active()

	res := g.Step(frameOf(core.ActionLeft))
	if !res.State.Celebrating {
		t.Fatal("expected celebration to be active")
	}
	g.Step(frameOf(core.ActionRotate))
	g.Step(frameOf(core.ActionLeft))
	if g.eng.Active() != start {
		t.Errorf("piece changed during celebration: %+v -> %+v", start, g.eng.Active())
	}

	res = g.Step(core.NewInputFrame())
	if res.State.Celebrating {
		t.Error("celebration should be over")
	}
	if g.eng.Active().Origin.Y != start.Origin.Y+1 {
		t.Error("gravity should resume after the celebration")
	}
}

func TestSettleEvents(t *testing.T) {
	g := newTestGame(9, 1)

	for i := 0; i < 100; i++ {
		res := g.Step(core.NewInputFrame())
		if res.Has(core.EventSettled) {
			if res.State.Score != 10 {
				t.Errorf("score after first settle = %d, expected 10", res.State.Score)
			}
			return
		}
	}
	t.Fatal("no piece settled")
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(42, 1)

	res := playUntilOver(t, g)
	if !res.Has(core.EventGameOver) {
		t.Error("game over step should emit EventGameOver")
	}

	// Steps after game over change nothing.
	frame := g.Frame()
	snap := g.Snapshot()
	res = g.Step(frameOf(core.ActionLeft, core.ActionDown))
	if len(res.Events) != 0 || g.Frame() != frame || g.Snapshot() != snap {
		t.Error("stepping a finished game should be a no-op")
	}

	oldSeed := g.Seed()
	res = g.Step(frameOf(core.ActionRestart))
	if !res.Has(core.EventRestart) {
		t.Error("restart should emit EventRestart")
	}
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("state after restart = %+v, expected fresh game", res.State)
	}
	if g.Seed() == oldSeed {
		t.Error("restart should derive a new seed")
	}
	if g.Frame() != 0 {
		t.Errorf("Frame() after restart = %d, expected 0", g.Frame())
	}

	// Restarts are reproducible.
	g2 := newTestGame(42, 1)
	playUntilOver(t, g2)
	g2.Step(frameOf(core.ActionRestart))
	if g2.Seed() != g.Seed() {
		t.Errorf("restart seeds differ: %d vs %d", g.Seed(), g2.Seed())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(5, 20)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"TERMTRIS", "NEXT", "Level", "Lines", "Score", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}

	g.paused = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the pause overlay")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(5, 1)
	playUntilOver(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER!") {
		t.Error("finished game should show the game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(5, 20)
	screen := core.NewScreen(30, 10)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small screen should show the resize message")
	}
}

func TestRenderOverlayFitsTinyScreen(t *testing.T) {
	g := newTestGame(5, 20)
	screen := core.NewScreen(10, 3)

	g.Render(screen)
	if got := screen.Get(0, 0); got != '┌' {
		t.Errorf("Get(0, 0) = %q, expected the overlay's top-left corner", got)
	}
	if got := screen.Get(9, 2); got != '┘' {
		t.Errorf("Get(9, 2) = %q, expected the overlay's bottom-right corner", got)
	}
}
