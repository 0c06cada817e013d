package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configures a game Model.
type Options struct {
	Store   *storage.Store // nil disables score saving
	Runtime core.RuntimeConfig
	Host    core.Host
	Logger  *log.Logger
	Player  string // name stored with runs; defaults to storage.LocalPlayer

	// RecordPath, when set, records every tick and writes a replay there on exit.
	RecordPath string
	Preset     string
	HoldWindow time.Duration
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	log      *log.Logger
	player   string
	keys     *KeyMapper
	hold     *HoldSampler
	help     help.Model
	recorder *replay.Recorder
	record   string
	now      func() time.Time
	gen      uint64

	state      core.GameState
	ticks      int // ticks since the last phase change
	savedRuns  int
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The game receives opts.Host when it accepts collaborators.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = storage.LocalPlayer
	}

	if h, ok := game.(core.HostAware); ok {
		h.AttachHost(opts.Host)
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  opts.Store,
		config: cfg,
		log:    logger,
		player: player,
		keys:   NewKeyMapper(),
		hold:   NewHoldSampler(opts.HoldWindow),
		help:   help.New(),
		record: opts.RecordPath,
		now:    time.Now,
		gen:    nextTickGen(),
	}
	if opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(game.ID(), cfg, opts.Preset)
	}
	game.Reset(cfg)
	m.state = game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.MapKey(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.state.Phase == "playing" && !m.state.Paused {
			return m, nil
		}
		m.backToMenu = true
		return m, tea.Quit
	case core.ActionFlap:
		m.hold.Press(a, m.now())
	case core.ActionConfirm, core.ActionPause:
		m.hold.Tap(a)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.hold.Latch(core.ActionFlap)
	case tea.MouseActionRelease:
		m.hold.Release(core.ActionFlap)
	}
	return m, nil
}

// handleResize keeps the simulation running; only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	frame := m.hold.Sample(at)
	if m.recorder != nil {
		m.recorder.Record(frame)
	}

	wasOver := m.state.GameOver
	res := m.game.Step(frame)
	m.state = res.State
	if m.recorder != nil {
		m.recorder.Observe(res)
	}

	m.ticks++
	for _, ev := range res.Events {
		switch ev.Kind {
		case core.EventPhaseChanged:
			if m.state.GameOver && !wasOver {
				m.saveRun()
			}
			m.ticks = 0
		case core.EventFatalHit:
			m.log.Debug("fatal hit", "score", m.state.Score)
		}
	}

	return m, tickCmd(m.config, m.gen)
}

// saveRun stores the finished session. Failures are logged and ignored.
func (m *Model) saveRun() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.state.Score,
		Ticks:  m.ticks,
		Seed:   m.config.Seed,
	})
	if err != nil {
		m.log.Warn("could not save run", "game", m.game.ID(), "err", err)
		return
	}
	m.savedRuns++
	m.log.Info("run saved", "game", m.game.ID(), "player", m.player, "score", m.state.Score)
}

// saveScreenshot saves the current screen to ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("could not create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// State returns the last observed game state.
func (m Model) State() core.GameState { return m.state }

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// SavedRuns returns how many runs this model stored.
func (m Model) SavedRuns() int { return m.savedRuns }

// Recording stamps the final state on the recording, or returns nil when
// recording is off.
func (m Model) Recording() *replay.Recording {
	if m.recorder == nil {
		return nil
	}
	return m.recorder.Finish(m.game.State())
}

// Run plays the game in the local terminal until the player quits.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, opts Options) (bool, error) {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: run %s: %w", game.ID(), err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	if rec := m.Recording(); rec != nil {
		if err := replay.SaveFile(m.record, rec); err != nil {
			return m.backToMenu, err
		}
		m.log.Info("replay saved", "path", m.record, "ticks", len(rec.Frames))
	}
	return m.backToMenu, nil
}
