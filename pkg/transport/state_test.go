package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_SetAndString(t *testing.T) {
	for _, expected := range AllStates {
		var actual State
		require.NoError(t, actual.Set(expected.String()))
		assert.Equal(t, expected, actual)
	}

	var buf State
	assert.Error(t, buf.Set("lost"))
}

func TestState_IsLinked(t *testing.T) {
	assert.False(t, StateDisconnected.IsLinked())
	assert.False(t, StateScanning.IsLinked())
	assert.True(t, StateConnected.IsLinked())
	assert.True(t, StateStreaming.IsLinked())
}

func TestType_SetAndString(t *testing.T) {
	for _, expected := range AllTypes {
		var actual Type
		require.NoError(t, actual.Set(expected.String()))
		assert.Equal(t, expected, actual)
	}

	var buf Type
	require.NoError(t, buf.Set("ws"))
	assert.Equal(t, TypeWebsocket, buf)
	assert.Error(t, buf.Set("carrier-pigeon"))
}
