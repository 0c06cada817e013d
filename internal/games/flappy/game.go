// Package flappy implements a Flappy Bird-style game.
// The player holds the flap action to climb and lets go to fall, steering
// the bird through gaps in pipes that scroll in from the right.
package flappy

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Registered variant IDs.
const (
	IDFixed  = "flappy"
	IDVaried = "flappy_varied"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
	strict           bool
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetStrict makes lifecycle invariant violations panic instead of being logged.
func SetStrict(on bool) {
	strict = on
}

// Options configures a Game built with New.
type Options struct {
	ID     string
	Title  string
	Config *config.FlappyConfig // nil loads from disk on Reset
	Logger *log.Logger
	Strict bool
	// GapMode overrides the configured gap mode when set.
	GapMode string
}

// Game implements registry.Game for Flappy Bird.
type Game struct {
	id    string
	title string
	opts  Options

	runtime core.RuntimeConfig
	cfg     config.FlappyConfig
	log     *log.Logger
	host    core.Host

	machine    *Machine
	scene      *Scene
	spawner    *Spawner
	control    BirdController
	classifier Classifier
	score      Score

	sessions   int64
	paused     bool
	prevAction bool
	prevPause  bool
	prevFlap   bool
	events     []core.Event
}

// New creates a game. Call Reset before stepping it.
func New(opts Options) *Game {
	if opts.ID == "" {
		opts.ID = IDFixed
	}
	if opts.Title == "" {
		opts.Title = "Flappy Bird"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{
		id:    opts.ID,
		title: opts.Title,
		opts:  opts,
		log:   opts.Logger,
		host:  core.Host{Audio: core.SilentAudio{}, Assets: core.ReadyAssets{}},
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// AttachHost wires audio and asset collaborators. Nil fields keep the defaults.
func (g *Game) AttachHost(h core.Host) {
	if h.Audio != nil {
		g.host.Audio = h.Audio
	}
	if h.Assets != nil {
		g.host.Assets = h.Assets
	}
}

// Reset returns the game to the Loading phase with a fresh scene.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	g.machine = NewMachine()
	g.scene = NewScene(g.cfg)
	g.spawner = nil
	g.control = BirdController{FlapVelocity: g.cfg.Physics.FlapVelocity}
	g.classifier = Classifier{Logger: g.log}
	best := g.score.Best()
	g.score = Score{best: best}

	g.sessions = 0
	g.paused = false
	g.prevAction, g.prevPause, g.prevFlap = false, false, false
	g.events = nil
}

func (g *Game) loadConfig() config.FlappyConfig {
	if g.opts.Config != nil {
		return *g.opts.Config
	}

	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	}
	if g.opts.GapMode != "" {
		cfg.Spawner.GapMode = g.opts.GapMode
	}
	return cfg
}

// Config returns the configuration in use.
func (g *Game) Config() config.FlappyConfig { return g.cfg }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.machine.Phase() }

// Scene exposes the entity and physics tables.
func (g *Game) Scene() *Scene { return g.scene }

// Step runs one tick: input, phase input transitions, spawner, bird
// controller, sprite update, physics, classification, score and phase
// update, culling and finally the score text refresh.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	flap := in.Has(core.ActionFlap)
	action := flap || in.Has(core.ActionConfirm)
	// Phase triggers fire on the press, so a flap held through a crash
	// must be released before the next session starts.
	pressed := action && !g.prevAction
	flapPressed := flap && !g.prevFlap
	pausePressed := in.Has(core.ActionPause) && !g.prevPause
	g.prevAction, g.prevFlap, g.prevPause = action, flap, in.Has(core.ActionPause)

	if g.machine.Phase() == PhaseLoading && g.host.Assets.Ready() {
		if tr, ok := g.machine.AssetsReady(); ok {
			g.enter(tr)
		}
	}

	if pausePressed && g.machine.Phase() == PhasePlaying {
		g.paused = !g.paused
		g.log.Debug("pause toggled", "paused", g.paused)
	}
	if g.paused {
		return g.result()
	}

	if pressed {
		if tr, ok := g.machine.Action(); ok {
			g.enter(tr)
		}
	}

	if g.machine.Phase() == PhasePlaying {
		g.play(flap, flapPressed)
	}

	g.refreshScore()
	return g.result()
}

func (g *Game) play(held, flapPressed bool) {
	dt := g.runtime.TickDuration()
	ents, bodies := g.scene.Entities(), g.scene.Bodies()

	if sp, ok := g.spawner.Tick(dt); ok {
		g.scene.SpawnObstacles(sp)
		g.emit(core.EventSpawn, fmt.Sprintf("gap=%.1f h=%.1f", sp.GapCenter, sp.GapHeight))
	}

	bird, ok := ents.Single(ecs.TagBird)
	if !ok {
		g.violation("no single bird while playing")
	} else if body, ok := bodies.Body(bird); ok {
		vel := g.control.Apply(body.Vel, held)
		bodies.SetVelocity(bird, vel)
		if flapPressed {
			g.host.Audio.Play(core.SoundFlap)
		}
		ents.SetSprite(bird, SpriteFor(vel.Y))
	}

	bodies.Step(dt)

	begins, ends := bodies.DrainBegin(), bodies.DrainEnd()
	if bird != 0 {
		for _, o := range g.classifier.Classify(bird, begins, ends, ents) {
			if g.machine.Phase() != PhasePlaying {
				break
			}
			switch o.Kind {
			case OutcomeFatal:
				g.host.Audio.Play(core.SoundHit)
				g.emit(core.EventFatalHit, fmt.Sprintf("pipe=%d", o.Other))
				if tr, ok := g.machine.FatalHit(); ok {
					g.enter(tr)
				}
			case OutcomePass:
				g.host.Audio.Play(core.SoundPoint)
				g.score.Increment()
				g.emit(core.EventPass, fmt.Sprintf("score=%d", g.score.Value()))
			}
		}
	}

	if g.machine.Phase() == PhasePlaying {
		g.scene.Cull()
	}
}

// enter runs the side effects of arriving in a phase.
func (g *Game) enter(tr Transition) {
	g.log.Info("phase changed", "from", tr.From, "to", tr.To, "score", g.score.Value())
	g.emit(core.EventPhaseChanged, tr.String())

	switch tr.To {
	case PhasePlaying:
		g.scene.Teardown()
		g.score.Reset()
		g.spawner = NewSpawner(g.cfg.Spawner, g.runtime.Seed+g.sessions)
		g.sessions++
		g.scene.SpawnSession()
		g.scene.SpawnObstacles(g.spawner.Next())
	case PhaseGameOver:
		g.scene.Teardown()
		g.spawner = nil
		g.scene.ShowMarker()
	}
}

// refreshScore rewrites the score text only when the score changed.
func (g *Game) refreshScore() {
	if !g.score.Changed() {
		return
	}
	ui, ok := g.scene.Entities().Single(ecs.TagScoreUI)
	if !ok {
		if g.machine.Phase() == PhasePlaying {
			g.violation("no scoreboard while playing")
		}
		return
	}
	g.scene.Entities().SetSprite(ui, fmt.Sprintf("Score: %d", g.score.Value()))
}

func (g *Game) violation(msg string) {
	if g.opts.Strict || strict {
		panic("flappy: " + msg)
	}
	g.log.Debug("lifecycle invariant violated", "detail", msg, "phase", g.machine.Phase())
}

func (g *Game) emit(kind core.EventKind, detail string) {
	g.events = append(g.events, core.Event{Kind: kind, Detail: detail})
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current score and phase.
func (g *Game) State() core.GameState {
	phase := PhaseLoading
	if g.machine != nil {
		phase = g.machine.Phase()
	}
	return core.GameState{
		Score:    g.score.Value(),
		Best:     g.score.Best(),
		GameOver: phase == PhaseGameOver,
		Paused:   g.paused,
		Phase:    phase.String(),
	}
}

func newVariant(id, title, gapMode string) registry.Game {
	return New(Options{
		ID:      id,
		Title:   title,
		Logger:  logger.WithPrefix(id),
		GapMode: gapMode,
	})
}

func init() {
	registry.Register(IDFixed, "Flappy Bird", func() registry.Game {
		return newVariant(IDFixed, "Flappy Bird", "")
	})
	registry.Register(IDVaried, "Flappy Bird (varied gaps)", func() registry.Game {
		return newVariant(IDVaried, "Flappy Bird (varied gaps)", config.GapRandom)
	})
}
