package ble

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"tinygo.org/x/bluetooth"

	"github.com/gyroctl/gyroctl/pkg/transport"
)

// Ble scans for the peripheral by its advertised service UUID, connects and
// subscribes to the sample characteristic's notifications.
type Ble struct {
	conf *Configuration

	adapter     *bluetooth.Adapter
	serviceUUID bluetooth.UUID
	charUUID    bluetooth.UUID

	enableOnce sync.Once
	enableErr  error
}

func (this *Ble) Initialize(conf *Configuration) error {
	this.conf = conf
	this.adapter = bluetooth.DefaultAdapter

	var err error
	if this.serviceUUID, err = bluetooth.ParseUUID(conf.ServiceUUID); err != nil {
		return fmt.Errorf("illegal service UUID %q: %w", conf.ServiceUUID, err)
	}
	if this.charUUID, err = bluetooth.ParseUUID(conf.CharacteristicUUID); err != nil {
		return fmt.Errorf("illegal characteristic UUID %q: %w", conf.CharacteristicUUID, err)
	}

	return nil
}

func (this *Ble) Dispose() error {
	return nil
}

func (this *Ble) GetType() transport.Type {
	return transport.TypeBle
}

func (this *Ble) Run(ctx context.Context, callbacks transport.Callbacks) error {
	this.enableOnce.Do(func() {
		this.enableErr = this.adapter.Enable()
	})
	if this.enableErr != nil {
		return fmt.Errorf("cannot enable bluetooth adapter: %w", this.enableErr)
	}

	callbacks.EmitState(transport.StateScanning, "")

	target, err := this.discover(ctx)
	if err != nil {
		return err
	}

	detail := target.Address.String()
	if name := target.LocalName(); name != "" {
		detail = fmt.Sprintf("%s (%s)", name, target.Address)
	}
	log.With("peripheral", detail).
		Info("Peripheral found.")

	device, err := this.adapter.Connect(target.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("cannot connect to %s: %w", detail, err)
	}
	defer func() { _ = device.Disconnect() }()

	lost := make(chan struct{}, 1)
	this.adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		if !connected {
			select {
			case lost <- struct{}{}:
			default:
			}
		}
	})

	callbacks.EmitState(transport.StateConnected, detail)

	if err := this.subscribe(ctx, device, callbacks); err != nil {
		return err
	}

	callbacks.EmitState(transport.StateStreaming, detail)

	select {
	case <-ctx.Done():
		return nil
	case <-lost:
		return fmt.Errorf("link to %s lost", detail)
	}
}

// discover runs one scan round and returns the first device advertising the
// configured service UUID.
func (this *Ble) discover(ctx context.Context) (bluetooth.ScanResult, error) {
	scanCtx, cancel := context.WithTimeout(ctx, this.conf.ScanTimeout)
	defer cancel()

	var found bluetooth.ScanResult
	var hasFound bool

	done := make(chan error, 1)
	go func() {
		done <- this.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !result.HasServiceUUID(this.serviceUUID) {
				return
			}
			found = result
			hasFound = true
			_ = adapter.StopScan()
		})
	}()

	select {
	case <-scanCtx.Done():
		_ = this.adapter.StopScan()
		<-done
	case err := <-done:
		if err != nil {
			return bluetooth.ScanResult{}, fmt.Errorf("scan failed: %w", err)
		}
	}

	if !hasFound {
		return bluetooth.ScanResult{}, fmt.Errorf("no peripheral advertising service %s found", this.conf.ServiceUUID)
	}
	return found, nil
}

// subscribe enables notifications on the sample characteristic. Subscription
// may fail right after connecting while the peripheral still settles, so it
// is retried on an interval as long as the context lives.
func (this *Ble) subscribe(ctx context.Context, device bluetooth.Device, callbacks transport.Callbacks) error {
	for {
		err := this.trySubscribe(device, callbacks)
		if err == nil {
			return nil
		}

		log.WithError(err).
			With("retryIn", this.conf.SubscribeRetryInterval).
			Warn("Cannot subscribe to notifications yet.")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(this.conf.SubscribeRetryInterval):
		}
	}
}

func (this *Ble) trySubscribe(device bluetooth.Device, callbacks transport.Callbacks) error {
	services, err := device.DiscoverServices([]bluetooth.UUID{this.serviceUUID})
	if err != nil {
		return fmt.Errorf("cannot discover service %s: %w", this.conf.ServiceUUID, err)
	}
	if len(services) == 0 {
		return fmt.Errorf("peripheral does not expose service %s", this.conf.ServiceUUID)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{this.charUUID})
	if err != nil {
		return fmt.Errorf("cannot discover characteristic %s: %w", this.conf.CharacteristicUUID, err)
	}
	if len(chars) == 0 {
		return fmt.Errorf("peripheral does not expose characteristic %s", this.conf.CharacteristicUUID)
	}

	char := chars[0]
	return char.EnableNotifications(func(buf []byte) {
		sample, err := transport.DecodeSample(buf, time.Now())
		if err != nil {
			log.WithError(err).
				Debug("Dropping malformed notification.")
			return
		}
		callbacks.EmitSample(sample)
	})
}
