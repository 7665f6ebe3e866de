package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fakeGame records the frames it receives and ends when told to.
type fakeGame struct {
	steps   uint64
	score   int
	over    bool
	resized bool
	frames  []core.InputFrame
}

func (g *fakeGame) ID() string                 { return "fake" }
func (g *fakeGame) Title() string              { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)   { g.steps, g.over = 0, false }
func (g *fakeGame) Render(dst *core.Screen)    { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) Resize(int, int)            { g.resized = true }
func (g *fakeGame) Cause() string              { return "wall" }
func (g *fakeGame) Frame() string              { return "..O\n" }
func (g *fakeGame) Steps() uint64              { return g.steps }
func (g *fakeGame) State() core.GameState      { return core.GameState{Score: g.score, GameOver: g.over} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if !g.over {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(g *fakeGame, store *storage.Store) Model {
	return NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 33, Seed: 1}, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelDeliversKeysOnNextTick(t *testing.T) {
	g := &fakeGame{score: 1}
	m := newTestModel(g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := update(t, m, TickMsg{Loop: m.loop})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.frames) != 1 {
		t.Fatalf("expected one step, got %d", len(g.frames))
	}
	dirs := g.frames[0].Directions
	if len(dirs) != 2 || dirs[0] != core.ActionDown || dirs[1] != core.ActionLeft {
		t.Errorf("directions = %v", dirs)
	}

	// Input is cleared after the tick
	update(t, m, TickMsg{Loop: m.loop})
	if len(g.frames[1].Directions) != 0 {
		t.Error("input frame should be cleared between ticks")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	_, cmd := update(t, m, TickMsg{Loop: m.loop + 1000})
	if cmd != nil || len(g.frames) != 0 {
		t.Error("ticks from another loop must be ignored")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{score: 6}
	m := newTestModel(g, store)

	m, _ = update(t, m, TickMsg{Loop: m.loop})
	g.over = true
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg{Loop: m.loop})
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one saved score, got %d", len(scores))
	}
	s := scores[0]
	if s.Score != 6 || s.Steps != 1 || s.Cause != "wall" || s.SessionID != m.SessionID() {
		t.Errorf("saved entry = %+v", s)
	}

	// A restarted game can be saved again
	g.Reset(core.RuntimeConfig{})
	m, _ = update(t, m, TickMsg{Loop: m.loop})
	g.over = true
	update(t, m, TickMsg{Loop: m.loop})
	if scores, _ := store.TopScores("fake", 10); len(scores) != 2 {
		t.Errorf("expected two saved scores, got %d", len(scores))
	}
}

func TestModelSavesAbandonedGame(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{score: 3}
	m := newTestModel(g, store)

	m, _ = update(t, m, TickMsg{Loop: m.loop})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	scores, _ := store.TopScores("fake", 10)
	if len(scores) != 1 || scores[0].Cause != CauseQuit {
		t.Errorf("abandoned game = %+v", scores)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}

	standalone := newTestModel(g, nil)
	standalone, cmd := update(t, standalone, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !standalone.BackToMenu() || cmd == nil {
		t.Error("standalone model should quit the program on back")
	}

	embedded := newTestModel(g, nil).Embedded()
	embedded, cmd = update(t, embedded, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !embedded.BackToMenu() || cmd != nil {
		t.Error("embedded model should hand back control without quitting")
	}
	if embedded.View() != "" {
		t.Error("view should be empty after leaving the game")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	if !g.resized {
		t.Error("Resizer games should be resized, not reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 50-helpHeight {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)
	view := m.View()
	if !strings.Contains(view, "fake") {
		t.Error("view should contain the rendered game")
	}
	if !strings.Contains(view, "pause") {
		t.Error("view should contain the help bar")
	}
}

func TestWriteScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := WriteScreenshot(dir, "snake", at, "..O\n")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "snake_20260102_030405.txt" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "..O\n" {
		t.Errorf("content = %q, err %v", data, err)
	}
}
