package intent

import "fmt"

// Intent is a discrete, debounced user intention derived from the orientation
// stream. Exactly one consumer (the Dispatcher) receives each intent.
type Intent interface {
	intentMarker()
}

// VolumeChange asks for the master volume to be set to Level (0..100).
type VolumeChange struct {
	Level int
}

func (VolumeChange) intentMarker() {}

func (this VolumeChange) String() string {
	return fmt.Sprintf("volume-change(%d)", this.Level)
}

// PlaybackToggle asks for a single play/pause key press.
type PlaybackToggle struct{}

func (PlaybackToggle) intentMarker() {}

func (this PlaybackToggle) String() string {
	return "playback-toggle"
}

// ClampLevel forces a volume level into the legal range 0..100.
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
