package gyro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyroctl/gyroctl/pkg/intent"
)

var testBase = time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)

func sampleAt(t *testing.T, roll, pitch, yaw float64, offset time.Duration) Sample {
	t.Helper()
	return Sample{Roll: roll, Pitch: pitch, Yaw: yaw, At: testBase.Add(offset)}
}

func TestInterpreter_FirstSampleCapturesBaseline(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	actual := instance.Process(sampleAt(t, 0, -10, 5, 0))
	assert.Empty(t, actual)

	state := instance.Snapshot()
	assert.True(t, state.BaselineCaptured)
	assert.Equal(t, -10.0, state.PitchBaseline)
	assert.Equal(t, 5.0, state.YawBaseline)
	assert.Equal(t, 50, state.LastVolumeLevel)
	assert.Equal(t, testBase, state.LastGestureAt)
}

func TestInterpreter_MapsRollLinearlyToVolume(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))

	actual := instance.Process(sampleAt(t, 22.5, 0, 0, 100*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.VolumeChange{Level: 75}}, actual)

	actual = instance.Process(sampleAt(t, -45, 0, 0, 200*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.VolumeChange{Level: 0}}, actual)

	actual = instance.Process(sampleAt(t, 45, 0, 0, 300*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.VolumeChange{Level: 100}}, actual)
}

func TestInterpreter_ClampsRollOutsideDomain(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))

	actual := instance.Process(sampleAt(t, 80, 0, 0, 100*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.VolumeChange{Level: 100}}, actual)

	actual = instance.Process(sampleAt(t, -80, 0, 0, 200*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.VolumeChange{Level: 0}}, actual)
}

func TestInterpreter_NonLevelSamplesNeverAffectVolume(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))

	// Yaw far outside the tolerance band: the big roll swings must be
	// ignored.
	for i, roll := range []float64{-40, -20, 20, 40} {
		actual := instance.Process(sampleAt(t, roll, 0, 30, time.Duration(i+1)*100*time.Millisecond))
		assert.Empty(t, actual, "roll %v", roll)
	}

	assert.Equal(t, 50, instance.Snapshot().LastVolumeLevel)
}

func TestInterpreter_HysteresisSuppressesNearDuplicates(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))

	// All of these map within the hysteresis step of level 50.
	var all []intent.Intent
	for i, roll := range []float64{0.3, 0.6, 0.9, 0.5} {
		all = append(all, instance.Process(sampleAt(t, roll, 0, 0, time.Duration(i+1)*100*time.Millisecond))...)
	}
	assert.Empty(t, all)

	// One real movement still gets through.
	actual := instance.Process(sampleAt(t, 10, 0, 0, time.Second))
	assert.Len(t, actual, 1)
}

func TestInterpreter_GestureFiresOnFastForwardTilt(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))

	// Still below the threshold, past the cooldown seeded at capture.
	require.Empty(t, instance.Process(sampleAt(t, 0, 10, 0, 1100*time.Millisecond)))

	actual := instance.Process(sampleAt(t, 0, 40, 0, 1200*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.PlaybackToggle{}}, actual)
}

func TestInterpreter_GestureCooldownAllowsExactlyOne(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))
	require.Empty(t, instance.Process(sampleAt(t, 0, 10, 0, 1100*time.Millisecond)))

	first := instance.Process(sampleAt(t, 0, 40, 0, 1200*time.Millisecond))
	require.Equal(t, []intent.Intent{intent.PlaybackToggle{}}, first)

	// A second qualifying edge inside the cooldown window is suppressed.
	require.Empty(t, instance.Process(sampleAt(t, 0, 10, 0, 1300*time.Millisecond)))
	second := instance.Process(sampleAt(t, 0, 40, 0, 1400*time.Millisecond))
	assert.Empty(t, second)

	// After the cooldown it fires again.
	require.Empty(t, instance.Process(sampleAt(t, 0, 10, 0, 2300*time.Millisecond)))
	third := instance.Process(sampleAt(t, 0, 40, 0, 2400*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.PlaybackToggle{}}, third)
}

func TestInterpreter_SlowDriftIsNoGesture(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))
	require.Empty(t, instance.Process(sampleAt(t, 0, 30, 0, 2*time.Second)))

	// The crossing sample arrives long after the last below-threshold one.
	actual := instance.Process(sampleAt(t, 0, 40, 0, 4*time.Second))
	assert.Empty(t, actual)
}

func TestInterpreter_ResetRecapturesBaselineAndCooldown(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 0, 0, 0, 0)))
	require.Empty(t, instance.Process(sampleAt(t, 0, 10, 0, 1100*time.Millisecond)))
	require.NotEmpty(t, instance.Process(sampleAt(t, 0, 40, 0, 1200*time.Millisecond)))

	// Link loss and reconnect.
	instance.Reset()
	require.False(t, instance.Snapshot().BaselineCaptured)

	reconnectAt := 10 * time.Second
	require.Empty(t, instance.Process(sampleAt(t, 0, 20, 0, reconnectAt)))

	state := instance.Snapshot()
	assert.Equal(t, 20.0, state.PitchBaseline)
	assert.Equal(t, testBase.Add(reconnectAt), state.LastGestureAt)

	// A gesture-qualifying sample right after the reconnect respects the
	// fresh cooldown; nothing is carried over from before the disconnect.
	actual := instance.Process(sampleAt(t, 0, 60, 0, reconnectAt+100*time.Millisecond))
	assert.Empty(t, actual)

	require.Empty(t, instance.Process(sampleAt(t, 0, 30, 0, reconnectAt+1100*time.Millisecond)))
	actual = instance.Process(sampleAt(t, 0, 60, 0, reconnectAt+1200*time.Millisecond))
	assert.Equal(t, []intent.Intent{intent.PlaybackToggle{}}, actual)
}

func TestInterpreter_MalformedSamplesLeaveStateUntouched(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(sampleAt(t, 10, 0, 0, 0)))
	before := instance.Snapshot()

	for _, malformed := range []Sample{
		{Roll: 10, Pitch: math.NaN(), Yaw: 0, At: testBase.Add(time.Second)},
		{Roll: math.Inf(1), Pitch: 0, Yaw: 0, At: testBase.Add(time.Second)},
		{Roll: 10, Pitch: 0, Yaw: 500, At: testBase.Add(time.Second)},
		{Roll: 10, Pitch: -400, Yaw: 0, At: testBase.Add(time.Second)},
	} {
		actual := instance.Process(malformed)
		assert.Empty(t, actual, "sample %v", malformed)
		assert.Equal(t, before, instance.Snapshot(), "sample %v", malformed)
	}
}

func TestInterpreter_MalformedSampleNeverCapturesBaseline(t *testing.T) {
	conf := NewConfiguration()
	instance := NewInterpreter(&conf)

	require.Empty(t, instance.Process(Sample{Roll: 0, Pitch: math.NaN(), Yaw: 0, At: testBase}))
	assert.False(t, instance.Snapshot().BaselineCaptured)
}
