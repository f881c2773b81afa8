package websocket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/gorilla/websocket"

	"github.com/gyroctl/gyroctl/pkg/transport"
)

// Websocket consumes the sample stream from a websocket endpoint; one CSV
// line per text frame. Useful for phones that cannot act as a BLE peripheral.
type Websocket struct {
	conf *Configuration
}

func (this *Websocket) Initialize(conf *Configuration) error {
	if conf.URL == "" {
		return fmt.Errorf("no websocket URL configured")
	}
	this.conf = conf
	return nil
}

func (this *Websocket) Dispose() error {
	return nil
}

func (this *Websocket) GetType() transport.Type {
	return transport.TypeWebsocket
}

func (this *Websocket) Run(ctx context.Context, callbacks transport.Callbacks) error {
	callbacks.EmitState(transport.StateScanning, this.conf.URL)

	dialer := websocket.Dialer{HandshakeTimeout: this.conf.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, this.conf.URL, nil)
	if err != nil {
		return fmt.Errorf("cannot dial %s: %w", this.conf.URL, err)
	}
	defer func() { _ = conn.Close() }()

	callbacks.EmitState(transport.StateConnected, this.conf.URL)

	// Unblocks the read loop below on cancellation.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	streaming := false
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("link to %s lost: %w", this.conf.URL, err)
		}

		sample, err := transport.DecodeSample(payload, time.Now())
		if err != nil {
			log.WithError(err).
				Debug("Dropping malformed frame.")
			continue
		}

		if !streaming {
			callbacks.EmitState(transport.StateStreaming, this.conf.URL)
			streaming = true
		}
		callbacks.EmitSample(sample)
	}
}
