package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestHoldSamplerWindow(t *testing.T) {
	h := NewHoldSampler(150 * time.Millisecond)
	t0 := time.Unix(100, 0)
	h.Press(core.ActionFlap, t0)

	tests := []struct {
		name string
		at   time.Duration
		want bool
	}{
		{"same instant", 0, true},
		{"inside window", 100 * time.Millisecond, true},
		{"window edge", 150 * time.Millisecond, false},
		{"after window", 300 * time.Millisecond, false},
	}
	for _, tt := range tests {
		if got := h.Sample(t0.Add(tt.at)).Has(core.ActionFlap); got != tt.want {
			t.Errorf("%s: held = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHoldSamplerRepeatExtends(t *testing.T) {
	h := NewHoldSampler(150 * time.Millisecond)
	t0 := time.Unix(100, 0)
	h.Press(core.ActionFlap, t0)
	h.Press(core.ActionFlap, t0.Add(100*time.Millisecond))

	if !h.Sample(t0.Add(200 * time.Millisecond)).Has(core.ActionFlap) {
		t.Error("auto-repeat press should extend the hold")
	}
}

func TestHoldSamplerTapLastsOneSample(t *testing.T) {
	h := NewHoldSampler(0)
	h.Tap(core.ActionPause)
	now := time.Now()

	if !h.Sample(now).Has(core.ActionPause) {
		t.Fatal("tap missing from first sample")
	}
	if h.Sample(now).Has(core.ActionPause) {
		t.Error("tap repeated in second sample")
	}
}

func TestHoldSamplerLatch(t *testing.T) {
	h := NewHoldSampler(10 * time.Millisecond)
	now := time.Now()
	h.Latch(core.ActionFlap)

	if !h.Sample(now.Add(time.Minute)).Has(core.ActionFlap) {
		t.Fatal("latched action should stay held")
	}
	h.Release(core.ActionFlap)
	if h.Sample(now).Has(core.ActionFlap) {
		t.Error("released action still held")
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}, core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, MenuActionQuit},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
