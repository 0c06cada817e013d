// Package replay records the per-tick input of a session and plays it back
// headlessly. Games are deterministic for a given seed and tick rate, so
// the inputs alone reproduce the session.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// FormatVersion is bumped whenever the file layout changes.
const FormatVersion = 2

const loadingPrefix = "loading->"

// ErrDiverged is returned by Run when playback ends in a different state than recorded.
var ErrDiverged = errors.New("replay: playback diverged from recording")

// Frame holds the actions held during one tick as a bit set.
type Frame struct {
	Mask uint16 `msgpack:"m"`
}

// Recording is a complete session capture.
type Recording struct {
	Version  int     `msgpack:"v"`
	GameID   string  `msgpack:"g"`
	Seed     int64   `msgpack:"s"`
	TickRate int     `msgpack:"r"`
	ScreenW  int     `msgpack:"w"`
	ScreenH  int     `msgpack:"h"`
	Preset   string  `msgpack:"p,omitempty"`
	Frames   []Frame `msgpack:"f"`
	Final    Final   `msgpack:"x"`

	// LoadingTicks is the tick, counted from 1, on which the game left
	// Loading. Zero means it never did.
	LoadingTicks int `msgpack:"l"`
}

// Final is the state the recorded session ended in.
type Final struct {
	Score int    `msgpack:"sc"`
	Phase string `msgpack:"ph"`
}

// Runtime returns the runtime configuration the session was recorded with.
func (r *Recording) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	}
}

// Duration returns the simulated length of the recording.
func (r *Recording) Duration() float64 {
	return float64(len(r.Frames)) * r.Runtime().TickDuration().Seconds()
}

func encodeFrame(in core.InputFrame) Frame {
	var f Frame
	for _, a := range in.List() {
		f.Mask |= 1 << uint(a)
	}
	return f
}

// Input expands the frame back into an input frame.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for a := core.ActionFlap; a <= core.ActionPause; a++ {
		if f.Mask&(1<<uint(a)) != 0 {
			in.Set(a)
		}
	}
	return in
}

// Recorder appends one frame per tick.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game reset with rt.
func NewRecorder(gameID string, rt core.RuntimeConfig, preset string) *Recorder {
	return &Recorder{rec: Recording{
		Version:  FormatVersion,
		GameID:   gameID,
		Seed:     rt.Seed,
		TickRate: rt.TickRate,
		ScreenW:  rt.ScreenW,
		ScreenH:  rt.ScreenH,
		Preset:   preset,
	}}
}

// Record appends the input of one tick.
func (r *Recorder) Record(in core.InputFrame) {
	r.rec.Frames = append(r.rec.Frames, encodeFrame(in))
}

// Observe notes the result of the tick just recorded. Call it after every
// Step so playback can hold the game in Loading for as long as it waited.
func (r *Recorder) Observe(res core.StepResult) {
	if r.rec.LoadingTicks != 0 {
		return
	}
	for _, ev := range res.Events {
		if ev.Kind == core.EventPhaseChanged && strings.HasPrefix(ev.Detail, loadingPrefix) {
			r.rec.LoadingTicks = len(r.rec.Frames)
			return
		}
	}
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Finish stamps the final state and returns the recording.
func (r *Recorder) Finish(state core.GameState) *Recording {
	r.rec.Final = Final{Score: state.Score, Phase: state.Phase}
	rec := r.rec
	return &rec
}

// Save writes rec to w.
func Save(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Load reads a recording from r.
func Load(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("replay: unsupported format version %d", rec.Version)
	}
	return &rec, nil
}

// SaveFile writes rec to path.
func SaveFile(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := Save(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a recording from path.
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// StepFunc observes each replayed tick. Returning false stops playback.
type StepFunc func(tick int, res core.StepResult) bool

// loadingGate reports assets ready from the recorded tick on.
type loadingGate struct {
	tick    int
	readyAt int
}

func (l *loadingGate) Ready() bool {
	return l.readyAt > 0 && l.tick >= l.readyAt
}

// Run resets g with the recorded runtime and feeds it every frame.
// It returns ErrDiverged when the final score or phase differs from the recording.
func Run(g registry.Game, rec *Recording, observe StepFunc) (core.GameState, error) {
	if g.ID() != rec.GameID {
		return core.GameState{}, fmt.Errorf("replay: recording is for %q, not %q", rec.GameID, g.ID())
	}

	assets := &loadingGate{readyAt: rec.LoadingTicks}
	if h, ok := g.(core.HostAware); ok {
		h.AttachHost(core.Host{Assets: assets})
	}

	g.Reset(rec.Runtime())
	state := g.State()
	for i, f := range rec.Frames {
		assets.tick = i + 1
		res := g.Step(f.Input())
		state = res.State
		if observe != nil && !observe(i, res) {
			return state, nil
		}
	}

	if state.Score != rec.Final.Score || state.Phase != rec.Final.Phase {
		return state, fmt.Errorf("%w: got score %d in %s, recorded %d in %s",
			ErrDiverged, state.Score, state.Phase, rec.Final.Score, rec.Final.Phase)
	}
	return state, nil
}
