package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const sampleRate = beep.SampleRate(44100)

var clipFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveNoise
)

// samples is a mono unity-gain clip.
type samples []float64

func oscillator(wave int, freq float64, d time.Duration, rng *rand.Rand) samples {
	n := sampleRate.N(d)
	buf := make(samples, n)
	phase := 0.0
	inc := freq / float64(sampleRate)
	for i := range buf {
		switch wave {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case waveNoise:
			buf[i] = rng.Float64()*2 - 1
		}
		phase += inc
		if phase >= 1 {
			phase--
		}
	}
	return buf
}

// envelope applies a linear attack/release in place.
func envelope(buf samples, attack, release time.Duration) {
	total := len(buf)
	a := sampleRate.N(attack)
	r := sampleRate.N(release)
	relStart := max(total-r, a)
	for i := range buf {
		switch {
		case i < a && a > 0:
			buf[i] *= float64(i) / float64(a)
		case i >= relStart && r > 0:
			buf[i] *= float64(total-i) / float64(r)
		}
	}
}

func concat(a, b samples) samples {
	out := make(samples, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// synthesize builds the clip for a sound effect.
func synthesize(s core.Sound, rng *rand.Rand) samples {
	switch s {
	case core.SoundHit:
		buf := oscillator(waveNoise, 0, 180*time.Millisecond, rng)
		thud := oscillator(waveSine, 90, 180*time.Millisecond, rng)
		for i := range buf {
			buf[i] = 0.4*buf[i] + 0.6*thud[i]
		}
		envelope(buf, 2*time.Millisecond, 150*time.Millisecond)
		return buf
	case core.SoundPoint:
		n1 := oscillator(waveSquare, 987.77, 70*time.Millisecond, rng)
		envelope(n1, time.Millisecond, 20*time.Millisecond)
		n2 := oscillator(waveSquare, 1318.51, 160*time.Millisecond, rng)
		envelope(n2, time.Millisecond, 120*time.Millisecond)
		return concat(n1, n2)
	case core.SoundFlap:
		buf := oscillator(waveNoise, 0, 90*time.Millisecond, rng)
		envelope(buf, 20*time.Millisecond, 60*time.Millisecond)
		return buf
	default:
		return nil
	}
}

// toBuffer copies a mono clip into a stereo beep buffer.
func toBuffer(clip samples) *beep.Buffer {
	pos := 0
	src := beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= len(clip) {
			return 0, false
		}
		n := copy2(out, clip[pos:])
		pos += n
		return n, true
	})
	buf := beep.NewBuffer(clipFormat)
	buf.Append(src)
	return buf
}

func copy2(out [][2]float64, in samples) int {
	n := min(len(out), len(in))
	for i := 0; i < n; i++ {
		out[i][0] = in[i]
		out[i][1] = in[i]
	}
	return n
}
