package facade

import (
	"context"
	"fmt"
	"sync"

	"github.com/gyroctl/gyroctl/pkg/transport"
	"github.com/gyroctl/gyroctl/pkg/transport/ble"
	"github.com/gyroctl/gyroctl/pkg/transport/mqtt"
	"github.com/gyroctl/gyroctl/pkg/transport/serial"
	"github.com/gyroctl/gyroctl/pkg/transport/websocket"
)

// Facade holds the transport variant selected by the configuration and
// presents it as one transport.Transport.
type Facade struct {
	transport.Transport

	lock sync.RWMutex
}

func (this *Facade) Initialize(conf *Configuration) error {
	this.lock.Lock()
	defer this.lock.Unlock()

	if this.Transport != nil {
		return nil
	}

	switch conf.Type {
	case transport.TypeBle:
		var buf ble.Ble
		if err := buf.Initialize(&conf.Ble); err != nil {
			return err
		}
		this.Transport = &buf
	case transport.TypeWebsocket:
		var buf websocket.Websocket
		if err := buf.Initialize(&conf.Websocket); err != nil {
			return err
		}
		this.Transport = &buf
	case transport.TypeMqtt:
		var buf mqtt.Mqtt
		if err := buf.Initialize(&conf.Mqtt); err != nil {
			return err
		}
		this.Transport = &buf
	case transport.TypeSerial:
		var buf serial.Serial
		if err := buf.Initialize(&conf.Serial); err != nil {
			return err
		}
		this.Transport = &buf
	default:
		return fmt.Errorf("unsupported transport type: %v", conf.Type)
	}

	return nil
}

func (this *Facade) Run(ctx context.Context, callbacks transport.Callbacks) error {
	this.lock.RLock()
	v := this.Transport
	this.lock.RUnlock()

	if v == nil {
		return fmt.Errorf("transport not initialized")
	}
	return v.Run(ctx, callbacks)
}

func (this *Facade) Dispose() error {
	this.lock.Lock()
	defer this.lock.Unlock()

	defer func() {
		this.Transport = nil
	}()

	if v, ok := this.Transport.(interface{ Dispose() error }); ok {
		return v.Dispose()
	}
	return nil
}

func (this *Facade) GetType() transport.Type {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Transport; v != nil {
		return v.GetType()
	}
	return transport.TypeDefault
}
