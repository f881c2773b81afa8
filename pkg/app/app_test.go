package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyroctl/gyroctl/pkg/audio"
	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/gyro"
)

func TestApp_IsSessionRelevant(t *testing.T) {
	instance := NewApp()
	instance.config.IncludedSessionIdentifiers = common.MustNewRegexp(`spotify|vlc`)
	instance.config.ExcludedSessionIdentifiers = common.MustNewRegexp(`vlc`)

	assert.True(t, instance.isSessionRelevant(&audio.Session{Identifier: "spotify.exe"}))
	assert.False(t, instance.isSessionRelevant(&audio.Session{Identifier: "vlc.exe"}))
	assert.False(t, instance.isSessionRelevant(&audio.Session{Identifier: "chrome.exe"}))
}

func TestApp_IsSessionRelevantWithoutFilters(t *testing.T) {
	instance := NewApp()

	assert.True(t, instance.isSessionRelevant(&audio.Session{Identifier: "anything"}))
}

func TestIsHeldLevel(t *testing.T) {
	conf := gyro.NewConfiguration()
	interpreter := gyro.NewInterpreter(&conf)

	at := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	require.Empty(t, interpreter.Process(gyro.Sample{Roll: 0, Pitch: -10, Yaw: 5, At: at}))
	state := interpreter.Snapshot()

	assert.True(t, isHeldLevel(state, &conf, gyro.Sample{Roll: 20, Pitch: -5, Yaw: 10, At: at}))
	assert.False(t, isHeldLevel(state, &conf, gyro.Sample{Roll: 20, Pitch: 30, Yaw: 10, At: at}))
	assert.False(t, isHeldLevel(state, &conf, gyro.Sample{Roll: 20, Pitch: -5, Yaw: 40, At: at}))
	assert.False(t, isHeldLevel(gyro.State{}, &conf, gyro.Sample{At: at}))
}

func TestDrainSamples(t *testing.T) {
	ch := make(chan gyro.Sample, 8)
	for i := 0; i < 5; i++ {
		ch <- gyro.Sample{Roll: float64(i)}
	}

	drainSamples(ch)

	select {
	case v := <-ch:
		t.Errorf("expected empty channel, got %v", v)
	default:
	}
}
