package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSample(t *testing.T) {
	at := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)

	actual, err := DecodeSample([]byte("12.5,-3.25,90"), at)
	require.NoError(t, err)
	assert.Equal(t, 12.5, actual.Roll)
	assert.Equal(t, -3.25, actual.Pitch)
	assert.Equal(t, 90.0, actual.Yaw)
	assert.Equal(t, at, actual.At)
}

func TestDecodeSample_ToleratesWhitespaceAndExtraFields(t *testing.T) {
	at := time.Now()

	actual, err := DecodeSample([]byte(" 1.0 , 2.0 , 3.0 , 42 \r\n"), at)
	require.NoError(t, err)
	assert.Equal(t, 1.0, actual.Roll)
	assert.Equal(t, 2.0, actual.Pitch)
	assert.Equal(t, 3.0, actual.Yaw)
}

func TestDecodeSample_Fails(t *testing.T) {
	for _, payload := range []string{
		"",
		"1.0",
		"1.0,2.0",
		"a,b,c",
		"1.0,oops,3.0",
	} {
		_, err := DecodeSample([]byte(payload), time.Now())
		assert.Error(t, err, "payload %q", payload)
	}
}
