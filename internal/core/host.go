package core

// Sound identifies a short sound effect the audio collaborator can play.
type Sound int

const (
	SoundHit   Sound = iota // Bird hit a pipe
	SoundPoint              // Bird passed a gap
	SoundFlap               // Bird flapped
)

// String returns the asset name of the sound.
func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundPoint:
		return "point"
	case SoundFlap:
		return "wing"
	default:
		return "unknown"
	}
}

// AudioSink plays one-shot sound effects. Implementations must not block.
type AudioSink interface {
	Play(s Sound)
}

// AssetProbe reports whether the assets a game needs have finished loading.
type AssetProbe interface {
	Ready() bool
}

// Host bundles the platform collaborators a game may use.
// A nil field means the collaborator is absent.
type Host struct {
	Audio  AudioSink
	Assets AssetProbe
}

// HostAware is implemented by games that accept platform collaborators.
type HostAware interface {
	AttachHost(h Host)
}

// SilentAudio is an AudioSink that discards every sound.
type SilentAudio struct{}

// Play does nothing.
func (SilentAudio) Play(Sound) {}

// ReadyAssets is an AssetProbe that is always ready.
type ReadyAssets struct{}

// Ready always returns true.
func (ReadyAssets) Ready() bool { return true }
