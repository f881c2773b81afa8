package transport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gyroctl/gyroctl/pkg/gyro"
)

// DecodeSample parses one notification payload of the peripheral. The wire
// format is a plain text line "<roll>,<pitch>,<yaw>", axes in degrees;
// trailing fields are ignored so firmware may append extras.
func DecodeSample(payload []byte, at time.Time) (gyro.Sample, error) {
	fields := strings.Split(strings.TrimSpace(string(payload)), ",")
	if len(fields) < 3 {
		return gyro.Sample{}, fmt.Errorf("malformed sample payload %q: expected at least 3 fields, got %d", payload, len(fields))
	}

	var axes [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return gyro.Sample{}, fmt.Errorf("malformed sample payload %q: field %d: %w", payload, i, err)
		}
		axes[i] = v
	}

	return gyro.Sample{
		Roll:  axes[0],
		Pitch: axes[1],
		Yaw:   axes[2],
		At:    at,
	}, nil
}
