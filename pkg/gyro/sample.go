package gyro

import (
	"fmt"
	"math"
	"time"
)

// maxAngle is the largest magnitude any axis may report. The peripheral sends
// plain Euler angles in degrees, so anything beyond a full rotation is garbage.
const maxAngle = 360.0

// Sample is a single orientation reading of the peripheral, all axes in
// degrees. Samples arrive at an unspecified, possibly irregular rate and are
// immutable once created.
type Sample struct {
	Roll  float64
	Pitch float64
	Yaw   float64

	At time.Time
}

func (this Sample) String() string {
	return fmt.Sprintf("roll=%.2f pitch=%.2f yaw=%.2f", this.Roll, this.Pitch, this.Yaw)
}

// IsValid reports whether this sample may be fed into the Interpreter.
// NaN, infinite and out-of-range axis values mark the whole sample as
// malformed; malformed samples must never move the volume or fire a toggle.
func (this Sample) IsValid() bool {
	for _, v := range []float64{this.Roll, this.Pitch, this.Yaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if v < -maxAngle || v > maxAngle {
			return false
		}
	}
	return true
}
