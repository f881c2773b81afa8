package intent

import (
	"fmt"

	"github.com/gyroctl/gyroctl/pkg/audio"
)

// Dispatcher invokes the OS action belonging to an intent, exactly once per
// intent. Dispatch failures are reported upward as values and never retried;
// a stale dispatch is worse than a skipped one.
type Dispatcher struct {
	Output audio.Output

	lastAppliedLevel int
	levelApplied     bool
}

func NewDispatcher(output audio.Output) *Dispatcher {
	return &Dispatcher{Output: output}
}

func (this *Dispatcher) Dispatch(v Intent) error {
	switch i := v.(type) {
	case VolumeChange:
		return this.dispatchVolume(i)
	case PlaybackToggle:
		return this.dispatchToggle()
	default:
		return fmt.Errorf("unsupported intent: %v", v)
	}
}

// Forget drops the idempotency memory. Called on link loss so the first
// volume command after a reconnect is always applied.
func (this *Dispatcher) Forget() {
	this.levelApplied = false
}

func (this *Dispatcher) dispatchVolume(v VolumeChange) error {
	level := ClampLevel(v.Level)
	if this.levelApplied && this.lastAppliedLevel == level {
		// Setting the same level twice is a no-op.
		return nil
	}
	if err := this.Output.SetVolume(level); err != nil {
		return fmt.Errorf("cannot set volume to %d: %w", level, err)
	}
	this.lastAppliedLevel = level
	this.levelApplied = true
	return nil
}

func (this *Dispatcher) dispatchToggle() error {
	if err := this.Output.SendMediaToggle(); err != nil {
		return fmt.Errorf("cannot send media toggle: %w", err)
	}
	return nil
}
