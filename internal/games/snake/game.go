// Package snake adapts the grid simulation in snake/core to the platform's
// registry.Game interface: it feeds host ticks and key actions into the
// simulation, keeps the last rendered frame and draws it with a HUD.
package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	snakecore "github.com/vovakirdan/tui-snake/internal/games/snake/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Registered game IDs.
const (
	IDClassic = "snake"
	IDMini    = "snake_mini"
)

// Death causes reported in StepResult.Cause and stored with scores.
const (
	CauseWall    = "wall"
	CauseSelf    = "self"
	CauseCleared = "cleared"
	CauseError   = "error"
)

const (
	hudHeight = 2 // HUD line plus separator
	cellWidth = 2 // Terminal columns per grid cell
)

// Package-level settings shared by every game instance, set by the CLI.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the config file passed to config.LoadSnake.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used for game events.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements registry.Game on top of a snakecore.Simulation.
type Game struct {
	id    string
	title string
	board int // Square board override; 0 uses the configured board

	cfg   config.SnakeConfig
	sim   *snakecore.Simulation
	frame *snakecore.Grid // Copy of the grid from the last Render callback
	rng   *rand.Rand      // Seeds for restarts
	seed  int64

	tick    uint64
	paused  bool
	died    bool // Set by the death callback during the current Step
	cause   string
	fault   error // Unexpected simulation error; ends the game
	screenW int
	screenH int
}

// New creates the classic game on the configured board.
func New() *Game {
	return &Game{id: IDClassic, title: "Snake"}
}

// NewMini creates the 15x15 variant.
func NewMini() *Game {
	return &Game{id: IDMini, title: "Snake (Mini)", board: 15}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMini, func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new simulation.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultSnakeConfig()
	}
	g.ResetWithConfig(rc, cfg)
}

// ResetWithConfig starts a new simulation from an explicit configuration.
func (g *Game) ResetWithConfig(rc core.RuntimeConfig, cfg config.SnakeConfig) {
	if g.board > 0 {
		cfg = cfg.WithBoard(g.board, g.board)
	}
	g.cfg = cfg
	g.seed = rc.Seed
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tick = 0
	g.paused = false
	g.died = false
	g.cause = ""
	g.fault = nil
	g.frame = nil

	sim, err := snakecore.NewSimulation(cfg.SimConfig(rc.Seed), snakecore.RendererFunc(g.capture))
	if err != nil {
		g.fail(err)
		return
	}
	sim.OnDeath(g.onDeath)
	g.sim = sim

	logger.Debug("game initialized",
		"game", g.id,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"delay", cfg.Speed.InitialDelay,
		"seed", rc.Seed)
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// capture keeps a copy of every frame the simulation renders.
func (g *Game) capture(grid *snakecore.Grid) {
	g.frame = grid.Clone()
}

func (g *Game) onDeath(cause error) {
	g.died = true
	g.cause = causeName(cause)
	logger.Info("snake died",
		"game", g.id,
		"cause", g.cause,
		"length", g.sim.Len(),
		"steps", g.sim.Steps())
}

func (g *Game) fail(err error) {
	g.fault = err
	g.cause = CauseError
	logger.Error("simulation failed", "game", g.id, "err", err)
}

// Step feeds one host tick into the simulation. Direction actions are
// delivered first, each stepping the creature immediately.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.died = false

	// Handle restart
	if in.Has(core.ActionRestart) && g.over() {
		g.ResetWithConfig(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		}, g.cfg)
		return g.result()
	}

	if g.over() {
		return g.result()
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall() {
		return g.result()
	}

	eaten := g.sim.FoodEaten()
	for _, a := range in.Directions {
		d, ok := direction(a)
		if !ok {
			continue
		}
		if err := g.sim.OnInput(d); err != nil {
			g.handle(err)
			return g.result()
		}
		if g.sim.IsOver() {
			return g.result()
		}
	}

	if err := g.sim.OnTick(); err != nil {
		g.handle(err)
		return g.result()
	}

	if g.sim.FoodEaten() > eaten {
		logger.Debug("food eaten",
			"game", g.id,
			"length", g.sim.Len(),
			"delay", g.sim.TickDelay())
	}
	return g.result()
}

// handle records an error returned by the simulation.
func (g *Game) handle(err error) {
	if errors.Is(err, snakecore.ErrNoFreeCell) && g.sim.IsCleared() {
		g.cause = CauseCleared
		logger.Info("board cleared", "game", g.id, "length", g.sim.Len(), "steps", g.sim.Steps())
		return
	}
	g.fail(err)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{
		State: g.State(),
		Died:  g.died,
		Cause: g.cause,
	}
}

// over reports whether the current game has ended for any reason.
func (g *Game) over() bool {
	return g.fault != nil || g.sim == nil || g.sim.IsOver()
}

// tooSmall reports whether the board does not fit on the screen.
func (g *Game) tooSmall() bool {
	w, h := g.requiredSize()
	return g.screenW < w || g.screenH < h
}

// requiredSize returns the screen size needed to draw the boxed board.
func (g *Game) requiredSize() (int, int) {
	return g.cfg.Board.Width*cellWidth + 2, g.cfg.Board.Height + hudHeight + 2
}

// State returns the current game state. The score is the creature length.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.over(),
		Paused:   g.paused,
	}
	if g.sim != nil {
		st.Score = g.sim.Len()
		st.Won = g.sim.IsCleared()
	}
	return st
}

// Steps returns the number of moves in the current game.
func (g *Game) Steps() uint64 {
	if g.sim == nil {
		return 0
	}
	return g.sim.Steps()
}

// Cause returns why the current game ended, or an empty string.
func (g *Game) Cause() string {
	return g.cause
}

// Frame returns the last rendered grid as ASCII.
func (g *Game) Frame() string {
	if g.frame == nil {
		return ""
	}
	return snakecore.RenderASCII(g.frame)
}

// direction maps a platform action to a simulation direction.
func direction(a core.Action) (snakecore.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snakecore.DirUp, true
	case core.ActionDown:
		return snakecore.DirDown, true
	case core.ActionLeft:
		return snakecore.DirLeft, true
	case core.ActionRight:
		return snakecore.DirRight, true
	default:
		return 0, false
	}
}

func causeName(err error) string {
	switch {
	case errors.Is(err, snakecore.ErrCollisionWall):
		return CauseWall
	case errors.Is(err, snakecore.ErrCollisionSelf):
		return CauseSelf
	default:
		return CauseError
	}
}
