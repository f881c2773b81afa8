package serial

import (
	"bufio"
	"context"
	"fmt"
	"time"

	log "github.com/echocat/slf4g"
	goserial "github.com/jacobsa/go-serial/serial"

	"github.com/gyroctl/gyroctl/pkg/transport"
)

// Serial consumes the sample stream from a serial port; one CSV line per
// sample. Fits wired peripherals such as an Arduino or ESP32 on USB.
type Serial struct {
	conf *Configuration
}

func (this *Serial) Initialize(conf *Configuration) error {
	if conf.Port == "" {
		return fmt.Errorf("no serial port configured")
	}
	this.conf = conf
	return nil
}

func (this *Serial) Dispose() error {
	return nil
}

func (this *Serial) GetType() transport.Type {
	return transport.TypeSerial
}

func (this *Serial) Run(ctx context.Context, callbacks transport.Callbacks) error {
	callbacks.EmitState(transport.StateScanning, this.conf.Port)

	port, err := goserial.Open(goserial.OpenOptions{
		PortName:        this.conf.Port,
		BaudRate:        this.conf.BaudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return fmt.Errorf("cannot open serial port %s: %w", this.conf.Port, err)
	}
	defer func() { _ = port.Close() }()

	callbacks.EmitState(transport.StateConnected, this.conf.Port)

	// Unblocks the scanner below on cancellation.
	stop := context.AfterFunc(ctx, func() { _ = port.Close() })
	defer stop()

	streaming := false
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		sample, err := transport.DecodeSample(scanner.Bytes(), time.Now())
		if err != nil {
			log.WithError(err).
				Debug("Dropping malformed line.")
			continue
		}

		if !streaming {
			callbacks.EmitState(transport.StateStreaming, this.conf.Port)
			streaming = true
		}
		callbacks.EmitSample(sample)
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("link to %s lost: %w", this.conf.Port, err)
	}
	return fmt.Errorf("serial port %s closed", this.conf.Port)
}
