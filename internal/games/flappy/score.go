package flappy

// Score counts passes in the current session and remembers the best one.
type Score struct {
	value   int
	best    int
	changed bool
}

// Increment adds one pass.
func (s *Score) Increment() {
	s.value++
	if s.value > s.best {
		s.best = s.value
	}
	s.changed = true
}

// Reset sets the session score to zero. Best is kept.
func (s *Score) Reset() {
	s.value = 0
	s.changed = true
}

// Value returns the session score.
func (s *Score) Value() int {
	return s.value
}

// Best returns the highest score seen by this tracker.
func (s *Score) Best() int {
	return s.best
}

// Changed reports whether the score changed since the last call and clears the flag.
func (s *Score) Changed() bool {
	c := s.changed
	s.changed = false
	return c
}
