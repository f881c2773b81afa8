package gyro

import (
	"math"
	"time"

	"github.com/gyroctl/gyroctl/pkg/intent"
)

// State is the interpreter's bookkeeping between two samples. It is owned
// exclusively by the Interpreter; everybody else only ever sees copies.
type State struct {
	PitchBaseline    float64
	YawBaseline      float64
	LastVolumeLevel  int
	LastGestureAt    time.Time
	PrevPitch        float64
	PrevAt           time.Time
	BaselineCaptured bool
}

// Interpreter turns the raw orientation stream into discrete intents. It is a
// plain state machine: Process is called synchronously per sample, never
// concurrently, and never fails.
type Interpreter struct {
	conf  *Configuration
	state State
}

func NewInterpreter(conf *Configuration) *Interpreter {
	return &Interpreter{conf: conf}
}

// Reset discards the captured baseline, the cooldown clock and the volume
// memory. Has to be called on every (re)connection before the first sample;
// the next valid sample recaptures the baseline.
func (this *Interpreter) Reset() {
	this.state = State{}
}

// Snapshot returns a copy of the current interpreter state, safe to hand to
// other goroutines.
func (this *Interpreter) Snapshot() State {
	return this.state
}

// Process consumes one sample and returns the intents it produced, usually
// none. Malformed samples are discarded without touching the state.
func (this *Interpreter) Process(sample Sample) []intent.Intent {
	if !sample.IsValid() {
		return nil
	}

	if !this.state.BaselineCaptured {
		this.capture(sample)
		return nil
	}

	var result []intent.Intent

	if this.isLevel(sample) {
		level := this.mapRoll(sample.Roll)
		if abs(level-this.state.LastVolumeLevel) >= this.conf.HysteresisStep {
			this.state.LastVolumeLevel = level
			result = append(result, intent.VolumeChange{Level: level})
		}
	}

	if this.isGestureEdge(sample) {
		this.state.LastGestureAt = sample.At
		result = append(result, intent.PlaybackToggle{})
	}

	this.state.PrevPitch = sample.Pitch
	this.state.PrevAt = sample.At

	return result
}

// capture records the orientation the peripheral is held in at connection
// time. Seeding LastGestureAt here gives a fresh cooldown after every
// reconnect, so a tilt held over a link loss cannot fire immediately.
func (this *Interpreter) capture(sample Sample) {
	this.state = State{
		PitchBaseline:    sample.Pitch,
		YawBaseline:      sample.Yaw,
		LastVolumeLevel:  this.mapRoll(sample.Roll),
		LastGestureAt:    sample.At,
		PrevPitch:        sample.Pitch,
		PrevAt:           sample.At,
		BaselineCaptured: true,
	}
}

func (this *Interpreter) isLevel(sample Sample) bool {
	return math.Abs(sample.Pitch-this.state.PitchBaseline) <= this.conf.LevelTolerance &&
		math.Abs(sample.Yaw-this.state.YawBaseline) <= this.conf.LevelTolerance
}

// isGestureEdge detects the forward-tilt gesture: the pitch crosses
// baseline+delta coming from below, fast enough to be deliberate, and outside
// the cooldown of the previous gesture.
func (this *Interpreter) isGestureEdge(sample Sample) bool {
	threshold := this.state.PitchBaseline + this.conf.GestureDelta
	if sample.Pitch < threshold || this.state.PrevPitch >= threshold {
		return false
	}
	if sample.At.Sub(this.state.PrevAt) > this.conf.GestureWindow {
		return false
	}
	return sample.At.Sub(this.state.LastGestureAt) >= this.conf.Cooldown
}

func (this *Interpreter) mapRoll(roll float64) int {
	min, max := this.conf.RollMin, this.conf.RollMax
	if roll < min {
		roll = min
	}
	if roll > max {
		roll = max
	}
	level := int(math.Round((roll - min) / (max - min) * 100))
	return intent.ClampLevel(level)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
