package status

import (
	"github.com/gyroctl/gyroctl/pkg/audio"
	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/gyro"
	"github.com/gyroctl/gyroctl/pkg/transport"
)

// Snapshot is an immutable copy of everything the UI may display. The core
// never shares its live state with the UI; it hands out snapshots instead, so
// UI reads can never race with interpreter writes.
type Snapshot struct {
	Link       transport.State
	Peripheral string

	LastSample *gyro.Sample
	Volume     int

	Endpoint audio.Endpoint
}

// Sink displays snapshots. Sinks are display only: they must not feed
// anything back into the core besides the commands main wires up explicitly
// (refresh, quit).
type Sink interface {
	SetupConfiguration(common.FlagHolder)
	Initialize() error
	Dispose() error

	// Notify hands the next snapshot to the sink. Implementations must be
	// cheap; they are called from the core's consumer loop.
	Notify(Snapshot) error
}
