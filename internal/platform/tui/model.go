package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpHeight is the number of rows below the game screen used by the help bar.
const helpHeight = 1

// CauseQuit is stored for games abandoned with the quit key.
const CauseQuit = "quit"

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame *core.InputFrame
	gameState  core.GameState
	sessionID  string
	loop       uint64 // Tick loop identifier
	status     string // Transient message shown in the help bar
	quitting   bool
	backToMenu bool
	embedded   bool  // Running inside a SessionModel; back does not quit the program
	scoreSaved *bool // Whether score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards log output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	frame := core.NewInputFrame()
	saved := false
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-helpHeight)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: &frame,
		sessionID:  uuid.NewString(),
		loop:       nextLoop(),
		scoreSaved: &saved,
	}
}

// gameConfig returns the runtime config the game sees, minus the help bar.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(1, cfg.ScreenH-helpHeight)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Debug("session started", "game", m.game.ID(), "session", m.sessionID, "seed", m.config.Seed)

	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.status = m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.recordAbandoned()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.help.Width = msg.Width

	// Games that can follow the terminal keep their state
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gc)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(*m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.recordGameOver(result)
	} else {
		*m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.loop, m.config.TickRate)
}

// recordGameOver saves the score once per finished game.
func (m Model) recordGameOver(result core.StepResult) {
	if *m.scoreSaved {
		return
	}
	*m.scoreSaved = true

	cause := result.Cause
	if rec, ok := m.game.(registry.Recorder); ok && cause == "" {
		cause = rec.Cause()
	}
	m.save(cause)
}

// recordAbandoned saves a game left mid-play, if it got anywhere.
func (m Model) recordAbandoned() {
	if m.gameState.GameOver || *m.scoreSaved {
		return
	}
	rec, ok := m.game.(registry.Recorder)
	if !ok || rec.Steps() == 0 {
		return
	}
	*m.scoreSaved = true
	m.gameState = m.game.State()
	m.save(CauseQuit)
}

func (m Model) save(cause string) {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	res := storage.Result{
		GameID:    m.game.ID(),
		SessionID: m.sessionID,
		Score:     m.gameState.Score,
		Cause:     cause,
	}
	if rec, ok := m.game.(registry.Recorder); ok {
		res.Steps = rec.Steps()
	}

	if _, err := m.store.SaveScore(res); err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("cannot save score", "err", err)
		return
	}
	m.logger.Info("score saved", "game", res.GameID, "score", res.Score, "steps", res.Steps, "cause", res.Cause)
}

// saveScreenshot writes the current board to ~/.snake/screenshots and
// returns a status message.
func (m Model) saveScreenshot() string {
	text := ""
	if rec, ok := m.game.(registry.Recorder); ok {
		text = rec.Frame()
	}
	if text == "" {
		m.game.Render(m.screen)
		text = m.screen.String()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: no home directory"
	}
	path, err := WriteScreenshot(filepath.Join(home, ".snake", "screenshots"), m.game.ID(), time.Now(), text)
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + filepath.Base(path)
}

// WriteScreenshot stores text as <dir>/<gameID>_<timestamp>.txt and returns the path.
func WriteScreenshot(dir, gameID string, at time.Time, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", gameID, at.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keyMapper.Keys())
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// Embedded returns a copy of the model that hands control back to its parent
// instead of quitting when the player goes back to the menu.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// SessionID returns the identifier stored with every score of this model.
func (m Model) SessionID() string {
	return m.sessionID
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
