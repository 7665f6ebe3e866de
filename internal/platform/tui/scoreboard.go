package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxScores caps the rows loaded per board.
const maxScores = 100

// boardKeys switches between board variants on the scoreboard.
type boardKeys struct {
	Scroll key.Binding
	Board  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Board, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var scoreboardKeys = boardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
	Board:  key.NewBinding(key.WithKeys("tab", "right", "l", "shift+tab", "left", "h"), key.WithHelp("tab/←/→", "board")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardModel lists the best runs of each board variant with a stats line.
type ScoreboardModel struct {
	boards    []registry.GameInfo
	board     int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
	embedded  bool
}

// NewScoreboardModel opens the scoreboard on the first registered board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: registry.List(),
		store:  store,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.load()
	return m
}

func newScoreTable(width, height int) table.Model {
	// Rank, length, steps and cause are fixed; "when" takes what is left.
	when := max(14, min(width-44, 24))
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Length", Width: 7},
			{Title: "Steps", Width: 8},
			{Title: "Cause", Width: 8},
			{Title: "When", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// BoardID returns the registry id of the board being shown.
func (m ScoreboardModel) BoardID() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.board].ID
}

// load refreshes scores and stats for the current board.
// Store errors leave the board empty.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.BoardID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if st, err := m.store.GetGameStats(id); err == nil && st.GamesCount > 0 {
			m.stats = st
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			humanize.Comma(s.Steps),
			s.Cause,
			humanize.Time(s.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if n := len(m.boards); n > 0 {
		m.board = (m.board + delta + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeys.Board):
			switch msg.String() {
			case "shift+tab", "left", "h":
				m.cycle(-1)
			default:
				m.cycle(1)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.board {
			tabs[i] = activeTabStyle.Render(b.Title)
		} else {
			tabs[i] = dimStyle.Render(" " + b.Title + " ")
		}
	}

	body := dimStyle.Italic(true).Padding(1, 2).
		Render("No games recorded yet.\nPlay a game to set a high score!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}
	if m.stats != nil {
		body += "\n" + dimStyle.Render(FormatStats(m.stats))
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString(center(titleStyle.Render("HIGH SCORES")))
	b.WriteString("\n\n")
	b.WriteString(center(strings.Join(tabs, " ")))
	b.WriteString("\n\n")
	b.WriteString(center(panelStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(scoreboardKeys)))
	return b.String()
}

// FormatStats renders game statistics as one line.
func FormatStats(st *storage.GameStats) string {
	return fmt.Sprintf("%s games  best %d  avg %.1f  %s steps  %d cleared  last %s",
		humanize.Comma(int64(st.GamesCount)),
		st.HighScore,
		st.AvgScore,
		humanize.Comma(st.TotalSteps),
		st.Wins,
		humanize.Time(st.LastPlayed))
}

// Embedded returns a copy of the scoreboard that does not quit the program
// when the user goes back.
func (m ScoreboardModel) Embedded() ScoreboardModel {
	m.embedded = true
	return m
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	finalModel, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
