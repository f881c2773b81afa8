package ble

import (
	"time"

	"github.com/gyroctl/gyroctl/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		"0000a000-0000-1000-8000-00805f9b34fb",
		"0000a001-0000-1000-8000-00805f9b34fb",
		30 * time.Second,
		5 * time.Second,
	}
}

type Configuration struct {
	// ServiceUUID is the service the peripheral advertises; scanning stops at
	// the first device carrying it.
	ServiceUUID string `yaml:"serviceUUID"`

	// CharacteristicUUID is the characteristic whose notifications carry the
	// orientation samples.
	CharacteristicUUID string `yaml:"characteristicUUID"`

	// ScanTimeout bounds one discovery round.
	ScanTimeout time.Duration `yaml:"scanTimeout,omitempty"`

	// SubscribeRetryInterval is the pause between attempts to subscribe to
	// notifications while the link is up.
	SubscribeRetryInterval time.Duration `yaml:"subscribeRetryInterval,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport.ble.serviceUUID", "Service UUID the peripheral advertises.").
		Envar("GYROCTL_TRANSPORT_BLE_SERVICE_UUID").
		StringVar(&this.ServiceUUID)
	using.Flag("transport.ble.characteristicUUID", "Characteristic UUID whose notifications carry the samples.").
		Envar("GYROCTL_TRANSPORT_BLE_CHARACTERISTIC_UUID").
		StringVar(&this.CharacteristicUUID)
	using.Flag("transport.ble.scanTimeout", "How long one discovery round may take before giving up.").
		Envar("GYROCTL_TRANSPORT_BLE_SCAN_TIMEOUT").
		DurationVar(&this.ScanTimeout)
	using.Flag("transport.ble.subscribeRetryInterval", "Pause between attempts to subscribe to notifications.").
		Envar("GYROCTL_TRANSPORT_BLE_SUBSCRIBE_RETRY_INTERVAL").
		DurationVar(&this.SubscribeRetryInterval)
}
