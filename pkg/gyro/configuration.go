package gyro

import (
	"time"

	"github.com/gyroctl/gyroctl/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		15,
		-45,
		45,
		2,
		35,
		500 * time.Millisecond,
		time.Second,
	}
}

// Configuration holds the tunable thresholds of the Interpreter. The defaults
// are chosen for a phone held flat in one hand; all of them are exposed as
// flags and persisted with the rest of the configuration.
type Configuration struct {
	// LevelTolerance is the band, in degrees around the captured baseline, in
	// which pitch and yaw still count as "held level". Only level samples
	// drive the volume.
	LevelTolerance float64 `yaml:"levelTolerance"`

	// RollMin/RollMax bound the roll domain that is mapped linearly onto the
	// volume range 0..100. Rolls outside the domain clamp to the nearest bound.
	RollMin float64 `yaml:"rollMin"`
	RollMax float64 `yaml:"rollMax"`

	// HysteresisStep is the minimum change of the mapped volume level before a
	// new volume intent is emitted. Suppresses jitter-driven repeats.
	HysteresisStep int `yaml:"hysteresisStep"`

	// GestureDelta is the forward-tilt distance from the pitch baseline, in
	// degrees, that triggers the playback toggle.
	GestureDelta float64 `yaml:"gestureDelta"`

	// GestureWindow is the maximum time between the last below-threshold
	// sample and the crossing one. Slow drifts across the threshold are not
	// gestures.
	GestureWindow time.Duration `yaml:"gestureWindow"`

	// Cooldown is the minimum time between two playback toggles.
	Cooldown time.Duration `yaml:"cooldown"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("gyro.levelTolerance", "Band in degrees around the baseline in which pitch and yaw still count as held level.").
		Envar("GYROCTL_GYRO_LEVEL_TOLERANCE").
		Float64Var(&this.LevelTolerance)
	using.Flag("gyro.rollMin", "Lower bound in degrees of the roll domain mapped to volume 0.").
		Envar("GYROCTL_GYRO_ROLL_MIN").
		Float64Var(&this.RollMin)
	using.Flag("gyro.rollMax", "Upper bound in degrees of the roll domain mapped to volume 100.").
		Envar("GYROCTL_GYRO_ROLL_MAX").
		Float64Var(&this.RollMax)
	using.Flag("gyro.hysteresisStep", "Minimum change of the mapped volume level before a new volume command is sent.").
		Envar("GYROCTL_GYRO_HYSTERESIS_STEP").
		IntVar(&this.HysteresisStep)
	using.Flag("gyro.gestureDelta", "Forward tilt in degrees from the baseline that triggers play/pause.").
		Envar("GYROCTL_GYRO_GESTURE_DELTA").
		Float64Var(&this.GestureDelta)
	using.Flag("gyro.gestureWindow", "Maximum duration of the tilt movement to still count as a gesture.").
		Envar("GYROCTL_GYRO_GESTURE_WINDOW").
		DurationVar(&this.GestureWindow)
	using.Flag("gyro.cooldown", "Minimum duration between two play/pause gestures.").
		Envar("GYROCTL_GYRO_COOLDOWN").
		DurationVar(&this.Cooldown)
}
