package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

func TestRenderASCII(t *testing.T) {
	g, _ := core.NewGrid(4, 3)
	g.Set(core.C(1, 1), core.CellHead)
	g.Set(core.C(0, 1), core.CellBody)
	g.Set(core.C(3, 0), core.CellFood)

	expected := "...*\n" +
		"oO..\n" +
		"....\n"
	if got := core.RenderASCII(g); got != expected {
		t.Errorf("RenderASCII mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestASCIIRecorder(t *testing.T) {
	rec := &core.ASCIIRecorder{}
	if rec.Last() != "" {
		t.Error("empty recorder should return empty frame")
	}

	start := core.C(0, 0)
	sim, err := core.NewSimulation(core.Config{
		Width:   3,
		Height:  2,
		Start:   &start,
		Heading: core.DirDown,
		Seed:    1,
	}, rec)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	if len(rec.Frames) != 1 {
		t.Fatalf("expected initial frame, got %d", len(rec.Frames))
	}
	if rec.Last()[0] != core.RuneHead {
		t.Errorf("expected head in the top-left corner, frame:\n%s", rec.Last())
	}

	sim.OnInput(core.DirRight)
	if len(rec.Frames) != 2 {
		t.Fatalf("expected frame after input, got %d", len(rec.Frames))
	}
}
