package transport

import (
	"context"

	"github.com/gyroctl/gyroctl/pkg/gyro"
)

// Callbacks receive everything a transport produces. OnSample and OnState are
// invoked from the transport's own goroutine; receivers must not block.
type Callbacks struct {
	// OnSample delivers one decoded orientation sample.
	OnSample func(gyro.Sample)

	// OnState announces every link state change, together with a short
	// human-readable detail such as the peripheral's address.
	OnState func(state State, detail string)
}

// EmitSample delivers a sample if a receiver is registered.
func (this Callbacks) EmitSample(v gyro.Sample) {
	if fn := this.OnSample; fn != nil {
		fn(v)
	}
}

// EmitState announces a link state change if a receiver is registered.
func (this Callbacks) EmitState(v State, detail string) {
	if fn := this.OnState; fn != nil {
		fn(v, detail)
	}
}

// Transport is one way of receiving the peripheral's orientation stream.
type Transport interface {
	// Run connects, streams samples into the callbacks and blocks until the
	// link is lost or the context is cancelled. Every Run starts from
	// StateScanning; the caller owns reconnecting.
	Run(ctx context.Context, callbacks Callbacks) error

	GetType() Type
}
