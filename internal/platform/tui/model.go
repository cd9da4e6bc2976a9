package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tank-rampage/internal/core"
	"github.com/vovakirdan/tank-rampage/internal/registry"
	"github.com/vovakirdan/tank-rampage/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	held       *HeldKeys
	renderer   *lipgloss.Renderer
	logger     *log.Logger
	now        func() time.Time
	width      int
	height     int
	lastTick   time.Time
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
	best       int  // Best stored score for this game
}

// NewModel creates a new Bubble Tea model for the given game. A nil store
// disables score saving.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:     game,
		store:    store,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		held:     NewHeldKeys(DefaultHoldTime),
		renderer: lipgloss.DefaultRenderer(),
		logger:   log.New(io.Discard),
		now:      time.Now,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.playfield())
	m.best = m.loadBest()
	return m
}

// loadBest reads the stored high score. Errors count as no score yet.
func (m Model) loadBest() int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		return 0
	}
	return best
}

// WithRenderer styles output with r, e.g. an SSH session's renderer.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	if r != nil {
		m.renderer = r
	}
	return m
}

// WithLogger reports saved scores and storage errors to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// footerRows is the height of the help footer.
func (m Model) footerRows() int {
	if m.help.ShowAll {
		return 4
	}
	return 1
}

// playfield is the screen area left for the game above the help footer.
func (m Model) playfield() (int, int) {
	return max(m.width, 0), max(m.height-m.footerRows(), 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.playfield()
	m.game.Reset(cfg)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.playfield())
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.held.Press(action, m.now())
	return m, nil
}

// handleResize processes window resize events. The world keeps its fixed
// size, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(m.playfield())
	return m, nil
}

// handleTick runs one simulation step with the time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result := m.game.Step(m.held.Frame(now), dt)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
		m.best = max(m.best, m.gameState.Score)
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run. Best effort: the game continues
// regardless.
func (m Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	entry, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Level)
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "run", entry.RunID, "score", entry.Score, "level", entry.Level)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	helpView := footer.Render("best "+humanize.Comma(int64(m.best))+" • ") +
		footer.Render(m.help.View(m.keys))
	return renderScreen(m.renderer, m.screen) + "\n" + helpView
}

// Best returns the best score known to the model, stored or from this session.
func (m Model) Best() int {
	return m.best
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg).WithLogger(logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
