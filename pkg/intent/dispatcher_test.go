package intent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyroctl/gyroctl/pkg/audio"
)

type recordingOutput struct {
	setVolumeCalls []int
	toggleCalls    int

	failWith error
}

func (this *recordingOutput) SetVolume(level int) error {
	if this.failWith != nil {
		return this.failWith
	}
	this.setVolumeCalls = append(this.setVolumeCalls, level)
	return nil
}

func (this *recordingOutput) GetVolume() (int, error) {
	if this.failWith != nil {
		return 0, this.failWith
	}
	if len(this.setVolumeCalls) == 0 {
		return 0, nil
	}
	return this.setVolumeCalls[len(this.setVolumeCalls)-1], nil
}

func (this *recordingOutput) SendMediaToggle() error {
	if this.failWith != nil {
		return this.failWith
	}
	this.toggleCalls++
	return nil
}

func TestDispatcher_VolumeIsIdempotent(t *testing.T) {
	output := &recordingOutput{}
	instance := NewDispatcher(output)

	require.NoError(t, instance.Dispatch(VolumeChange{Level: 30}))
	require.NoError(t, instance.Dispatch(VolumeChange{Level: 30}))

	assert.Equal(t, []int{30}, output.setVolumeCalls)

	require.NoError(t, instance.Dispatch(VolumeChange{Level: 31}))
	assert.Equal(t, []int{30, 31}, output.setVolumeCalls)
}

func TestDispatcher_VolumeIsClamped(t *testing.T) {
	output := &recordingOutput{}
	instance := NewDispatcher(output)

	require.NoError(t, instance.Dispatch(VolumeChange{Level: 150}))
	require.NoError(t, instance.Dispatch(VolumeChange{Level: -5}))

	assert.Equal(t, []int{100, 0}, output.setVolumeCalls)
}

func TestDispatcher_ToggleFiresOncePerIntent(t *testing.T) {
	output := &recordingOutput{}
	instance := NewDispatcher(output)

	require.NoError(t, instance.Dispatch(PlaybackToggle{}))
	require.NoError(t, instance.Dispatch(PlaybackToggle{}))

	assert.Equal(t, 2, output.toggleCalls)
}

func TestDispatcher_SurfacesDeviceUnavailable(t *testing.T) {
	output := &recordingOutput{failWith: audio.ErrDeviceUnavailable}
	instance := NewDispatcher(output)

	err := instance.Dispatch(VolumeChange{Level: 30})
	require.Error(t, err)
	assert.True(t, errors.Is(err, audio.ErrDeviceUnavailable))

	// The failed level is not remembered; the next attempt reaches the
	// output again.
	output.failWith = nil
	require.NoError(t, instance.Dispatch(VolumeChange{Level: 30}))
	assert.Equal(t, []int{30}, output.setVolumeCalls)
}

func TestDispatcher_SurfacesPermissionDenied(t *testing.T) {
	output := &recordingOutput{failWith: audio.ErrPermissionDenied}
	instance := NewDispatcher(output)

	err := instance.Dispatch(PlaybackToggle{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, audio.ErrPermissionDenied))
	assert.Equal(t, 0, output.toggleCalls)
}

func TestDispatcher_ForgetDropsIdempotencyMemory(t *testing.T) {
	output := &recordingOutput{}
	instance := NewDispatcher(output)

	require.NoError(t, instance.Dispatch(VolumeChange{Level: 40}))
	instance.Forget()
	require.NoError(t, instance.Dispatch(VolumeChange{Level: 40}))

	assert.Equal(t, []int{40, 40}, output.setVolumeCalls)
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, 0, ClampLevel(-1))
	assert.Equal(t, 0, ClampLevel(0))
	assert.Equal(t, 55, ClampLevel(55))
	assert.Equal(t, 100, ClampLevel(100))
	assert.Equal(t, 100, ClampLevel(101))
}
