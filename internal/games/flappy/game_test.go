package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

type recordingAudio struct {
	played []core.Sound
}

func (a *recordingAudio) Play(s core.Sound) { a.played = append(a.played, s) }

func (a *recordingAudio) count(s core.Sound) int {
	n := 0
	for _, p := range a.played {
		if p == s {
			n++
		}
	}
	return n
}

type assetsFlag struct{ ready bool }

func (a *assetsFlag) Ready() bool { return a.ready }

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestGame(t *testing.T, audio *recordingAudio) *Game {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	g := New(Options{Config: &cfg, Strict: true})
	if audio != nil {
		g.AttachHost(core.Host{Audio: audio})
	}
	g.Reset(testRuntime())
	return g
}

func idle() core.InputFrame { return core.NewInputFrame() }

func press(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

// startPlaying moves a fresh game from Loading to Playing.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	g.Step(idle())
	if g.Phase() != PhaseStart {
		t.Fatalf("expected start phase, got %s", g.Phase())
	}
	g.Step(press(core.ActionFlap))
	g.Step(idle())
	if g.Phase() != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", g.Phase())
	}
}

func birdOf(t *testing.T, g *Game) (ecs.EntityID, physics.Body) {
	t.Helper()
	id, ok := g.Scene().Entities().Single(ecs.TagBird)
	if !ok {
		t.Fatal("no bird in scene")
	}
	b, ok := g.Scene().Bodies().Body(id)
	if !ok {
		t.Fatal("bird has no body")
	}
	return id, b
}

// placeOnBird drops a motionless pipe or passage right on top of the bird.
func placeOnBird(t *testing.T, g *Game, tag ecs.Tag) ecs.EntityID {
	t.Helper()
	_, bird := birdOf(t, g)
	id := g.Scene().Entities().Create(tag, ecs.ScopeSession)
	body := physics.Body{Kind: physics.Kinematic, Shape: physics.Box(48, 320), Pos: bird.Pos}
	if tag == ecs.TagPassage {
		body.Shape = physics.Box(48, 150)
		body.Sensor = true
	}
	g.Scene().Bodies().Insert(id, body)
	return id
}

// passOnce drives the bird through a passage sensor.
func passOnce(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	id := placeOnBird(t, g, ecs.TagPassage)
	g.Step(idle())
	g.Scene().Bodies().SetPosition(id, core.V2(-1000, 0))
	return g.Step(idle())
}

func hasEvent(res core.StepResult, kind core.EventKind) bool {
	for _, ev := range res.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestFatalHitEndsSession(t *testing.T) {
	audio := &recordingAudio{}
	g := newTestGame(t, audio)
	startPlaying(t, g)

	passOnce(t, g)
	passOnce(t, g)

	placeOnBird(t, g, ecs.TagPipe)
	res := g.Step(idle())

	if g.Phase() != PhaseGameOver || !res.State.GameOver {
		t.Fatalf("phase = %s, expected game over", g.Phase())
	}
	if res.State.Score != 2 {
		t.Errorf("score = %d, expected unchanged 2", res.State.Score)
	}
	if !hasEvent(res, core.EventFatalHit) || !hasEvent(res, core.EventPhaseChanged) {
		t.Errorf("missing fatal/phase events: %v", res.Events)
	}
	if audio.count(core.SoundHit) != 1 {
		t.Errorf("hit sound played %d times", audio.count(core.SoundHit))
	}

	ents := g.Scene().Entities()
	for _, tag := range []ecs.Tag{ecs.TagBird, ecs.TagPipe, ecs.TagPassage, ecs.TagGround, ecs.TagScoreUI} {
		if ids := ents.Query(tag); len(ids) != 0 {
			t.Errorf("%s entities survived game over: %v", tag, ids)
		}
	}
	if _, ok := ents.Single(ecs.TagMarker); !ok {
		t.Error("expected a game-over marker")
	}
	if n := g.Scene().Bodies().Len(); n != 0 {
		t.Errorf("%d bodies survived game over", n)
	}
}

func TestPassesIncrementScore(t *testing.T) {
	audio := &recordingAudio{}
	g := newTestGame(t, audio)
	startPlaying(t, g)

	var res core.StepResult
	for i := 0; i < 3; i++ {
		res = passOnce(t, g)
		if !hasEvent(res, core.EventPass) {
			t.Fatalf("pass %d: no pass event in %v", i+1, res.Events)
		}
	}
	if res.State.Score != 3 || g.Phase() != PhasePlaying {
		t.Errorf("score = %d phase = %s, expected 3 while playing", res.State.Score, g.Phase())
	}
	if audio.count(core.SoundPoint) != 3 {
		t.Errorf("point sound played %d times", audio.count(core.SoundPoint))
	}

	ui, ok := g.Scene().Entities().Single(ecs.TagScoreUI)
	if !ok {
		t.Fatal("no score text")
	}
	if text := g.Scene().Entities().Sprite(ui); text != "Score: 3" {
		t.Errorf("score text = %q", text)
	}
}

func TestEnteringPassageDoesNotScore(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	placeOnBird(t, g, ecs.TagPassage)
	res := g.Step(idle())
	if res.State.Score != 0 || hasEvent(res, core.EventPass) {
		t.Errorf("entering a passage scored: %+v", res)
	}
}

func TestRestartResetsScore(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	for i := 0; i < 5; i++ {
		passOnce(t, g)
	}
	placeOnBird(t, g, ecs.TagPipe)
	g.Step(idle())
	if g.State().Score != 5 || g.Phase() != PhaseGameOver {
		t.Fatalf("setup failed: %+v", g.State())
	}

	res := g.Step(press(core.ActionFlap))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, expected playing", g.Phase())
	}
	if res.State.Score != 0 || res.State.Best != 5 {
		t.Errorf("score/best = %d/%d, expected 0/5", res.State.Score, res.State.Best)
	}

	ents := g.Scene().Entities()
	if _, ok := ents.Single(ecs.TagBird); !ok {
		t.Error("bird not respawned")
	}
	if n := len(ents.Query(ecs.TagPipe)); n != 2 {
		t.Errorf("expected initial pipe pair, got %d pipes", n)
	}
	if n := len(ents.Query(ecs.TagPassage)); n != 1 {
		t.Errorf("expected one passage, got %d", n)
	}
	if len(ents.Query(ecs.TagMarker)) != 0 {
		t.Error("game-over marker survived restart")
	}
	ui, _ := ents.Single(ecs.TagScoreUI)
	if text := ents.Sprite(ui); text != "Score: 0" {
		t.Errorf("score text = %q", text)
	}
}

func TestHeldFlapDoesNotRestart(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	placeOnBird(t, g, ecs.TagPipe)
	g.Step(press(core.ActionFlap))
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s", g.Phase())
	}
	for i := 0; i < 30; i++ {
		g.Step(press(core.ActionFlap))
	}
	if g.Phase() != PhaseGameOver {
		t.Fatal("holding the action through a crash restarted the game")
	}

	g.Step(idle())
	g.Step(press(core.ActionFlap))
	if g.Phase() != PhasePlaying {
		t.Error("a fresh press should restart")
	}
}

func TestOnlyTriggersMovePhases(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(idle())

	// Start ignores everything but the action.
	for _, a := range []core.Action{core.ActionPause, core.ActionBack} {
		g.Step(press(a))
		g.Step(idle())
	}
	if g.Phase() != PhaseStart {
		t.Fatalf("phase = %s, expected start", g.Phase())
	}

	g.Step(press(core.ActionConfirm))
	if g.Phase() != PhasePlaying {
		t.Fatalf("confirm should start the game, phase = %s", g.Phase())
	}

	// Flapping never ends a session by itself.
	for i := 0; i < 60; i++ {
		g.Step(press(core.ActionFlap))
		g.Step(idle())
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %s, expected playing", g.Phase())
	}
}

func TestLoadingWaitsForAssets(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	assets := &assetsFlag{}
	g := New(Options{Config: &cfg, Strict: true})
	g.AttachHost(core.Host{Assets: assets})
	g.Reset(testRuntime())

	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionFlap))
		g.Step(idle())
	}
	if g.Phase() != PhaseLoading {
		t.Fatalf("phase = %s before assets were ready", g.Phase())
	}

	assets.ready = true
	res := g.Step(idle())
	if g.Phase() != PhaseStart || res.State.Phase != "start" {
		t.Errorf("phase = %s after assets became ready", g.Phase())
	}
}

func TestSpawnerRunsWhilePlaying(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	spawns := 0
	for i := 0; i < 95; i++ {
		if hasEvent(g.Step(idle()), core.EventSpawn) {
			spawns++
		}
	}
	if spawns != 1 {
		t.Errorf("expected one timed spawn after ~1.5s, got %d", spawns)
	}
	if n := len(g.Scene().Entities().Query(ecs.TagPipe)); n != 4 {
		t.Errorf("expected 4 pipes, got %d", n)
	}
}

func TestIdleBirdEventuallyCrashes(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	crashed := false
	for i := 0; i < 10*60 && !crashed; i++ {
		crashed = hasEvent(g.Step(idle()), core.EventFatalHit)
	}
	if !crashed || g.Phase() != PhaseGameOver {
		t.Errorf("idle bird never hit a pipe, phase = %s", g.Phase())
	}
}

func TestBirdRestsOnGround(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	for i := 0; i < 120; i++ {
		g.Step(idle())
	}
	_, b := birdOf(t, g)
	limit := g.Config().Playfield.Height/2 - g.Config().Playfield.GroundHeight - g.Config().Bird.Radius
	if b.Pos.Y > limit+0.001 {
		t.Errorf("bird sank into the ground: y = %v, limit %v", b.Pos.Y, limit)
	}
	if g.Phase() != PhasePlaying {
		t.Error("touching the ground must not end the session")
	}
}

func TestBirdSpriteFollowsVelocity(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	g.Step(press(core.ActionFlap))
	id, _ := birdOf(t, g)
	if s := g.Scene().Entities().Sprite(id); s != SpriteUpFlap {
		t.Errorf("sprite while flapping = %q", s)
	}

	for i := 0; i < 60; i++ {
		g.Step(idle())
	}
	if s := g.Scene().Entities().Sprite(id); s != SpriteDownFlap && s != SpriteMidFlap {
		t.Errorf("sprite while falling = %q", s)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	_, before := birdOf(t, g)
	for i := 0; i < 10; i++ {
		g.Step(press(core.ActionPause)) // still held, must not toggle
	}
	_, after := birdOf(t, g)
	if before.Pos != after.Pos || !g.State().Paused {
		t.Error("game advanced while paused")
	}

	g.Step(idle())
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second press should resume")
	}
}

func TestStrictInvariantViolationPanics(t *testing.T) {
	g := newTestGame(t, nil)
	startPlaying(t, g)

	id, _ := birdOf(t, g)
	g.Scene().Entities().Destroy(id)
	g.Scene().Entities().Flush()
	g.Scene().Bodies().Remove(id)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing bird")
		}
	}()
	g.Step(idle())
}

func TestLenientInvariantViolationIsNoop(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	g := New(Options{Config: &cfg})
	g.Reset(testRuntime())
	startPlaying(t, g)

	ui, _ := g.Scene().Entities().Single(ecs.TagScoreUI)
	g.Scene().Entities().Destroy(ui)
	g.Scene().Entities().Flush()

	passOnce(t, g)
	if g.Phase() != PhasePlaying || g.State().Score != 1 {
		t.Errorf("state = %+v", g.State())
	}
}

func TestDeterminism(t *testing.T) {
	script := make([]core.InputFrame, 900)
	for i := range script {
		script[i] = core.NewInputFrame()
		if i%40 < 8 {
			script[i].Set(core.ActionFlap)
		}
	}

	run := func() ([]core.GameState, []float64) {
		g := newTestGame(t, nil)
		var states []core.GameState
		for _, in := range script {
			states = append(states, g.Step(in).State)
		}
		var xs []float64
		for _, id := range g.Scene().Entities().Query(ecs.TagPassage) {
			b, _ := g.Scene().Bodies().Body(id)
			xs = append(xs, b.Pos.X, b.Pos.Y, b.Shape.H)
		}
		return states, xs
	}

	s1, x1 := run()
	s2, x2 := run()
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("tick %d: states differ: %+v vs %+v", i, s1[i], s2[i])
		}
	}
	if len(x1) != len(x2) {
		t.Fatalf("passage counts differ")
	}
	for i := range x1 {
		if x1[i] != x2[i] {
			t.Fatalf("passage layout differs at %d: %v vs %v", i, x1[i], x2[i])
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, nil)
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	if !strings.Contains(scr.String(), "Loading") {
		t.Errorf("loading screen:\n%s", scr)
	}

	g.Step(idle())
	scr.Clear()
	g.Render(scr)
	if !strings.Contains(scr.String(), "Flappy Bird") {
		t.Errorf("title screen:\n%s", scr)
	}

	g.Step(press(core.ActionFlap))
	scr.Clear()
	g.Render(scr)
	out := scr.String()
	if !strings.Contains(out, "Score: 0") || !strings.ContainsRune(out, '▲') {
		t.Errorf("playing screen:\n%s", out)
	}
	if !strings.ContainsRune(out, GroundChar) {
		t.Errorf("ground not drawn:\n%s", out)
	}

	placeOnBird(t, g, ecs.TagPipe)
	g.Step(idle())
	scr.Clear()
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Errorf("game over screen:\n%s", scr)
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, tc := range []struct {
		id   string
		mode string
	}{
		{IDFixed, config.GapFixed},
		{IDVaried, config.GapRandom},
	} {
		if !registry.Exists(tc.id) {
			t.Fatalf("%s not registered", tc.id)
		}
		g, err := registry.Create(tc.id)
		if err != nil {
			t.Fatal(err)
		}
		g.Reset(testRuntime())
		fg, ok := g.(*Game)
		if !ok {
			t.Fatalf("%s created %T", tc.id, g)
		}
		if fg.Config().Spawner.GapMode != tc.mode {
			t.Errorf("%s gap mode = %q, expected %q", tc.id, fg.Config().Spawner.GapMode, tc.mode)
		}
	}
}
