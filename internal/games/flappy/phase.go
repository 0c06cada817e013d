package flappy

// Phase is the game-wide lifecycle state.
type Phase int

const (
	PhaseLoading  Phase = iota // Waiting for assets
	PhaseStart                 // Title screen, waiting for the first action
	PhasePlaying               // A session is running
	PhaseGameOver              // Session ended, waiting for a restart action
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Transition records a phase change.
type Transition struct {
	From Phase
	To   Phase
}

func (t Transition) String() string {
	return t.From.String() + "->" + t.To.String()
}

// Machine is the phase state machine. Only the trigger methods move it:
//
//	Loading  --AssetsReady--> Start
//	Start    --Action-------> Playing
//	Playing  --FatalHit-----> GameOver
//	GameOver --Action-------> Playing
//
// Any other trigger is ignored and reports false.
type Machine struct {
	phase Phase
}

// NewMachine returns a machine in the Loading phase.
func NewMachine() *Machine {
	return &Machine{phase: PhaseLoading}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// AssetsReady moves Loading to Start.
func (m *Machine) AssetsReady() (Transition, bool) {
	if m.phase != PhaseLoading {
		return Transition{}, false
	}
	return m.move(PhaseStart), true
}

// Action moves Start or GameOver to Playing.
func (m *Machine) Action() (Transition, bool) {
	if m.phase != PhaseStart && m.phase != PhaseGameOver {
		return Transition{}, false
	}
	return m.move(PhasePlaying), true
}

// FatalHit moves Playing to GameOver.
func (m *Machine) FatalHit() (Transition, bool) {
	if m.phase != PhasePlaying {
		return Transition{}, false
	}
	return m.move(PhaseGameOver), true
}

func (m *Machine) move(to Phase) Transition {
	t := Transition{From: m.phase, To: to}
	m.phase = to
	return t
}
