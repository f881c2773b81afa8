package facade

import (
	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/transport"
	"github.com/gyroctl/gyroctl/pkg/transport/ble"
	"github.com/gyroctl/gyroctl/pkg/transport/mqtt"
	"github.com/gyroctl/gyroctl/pkg/transport/serial"
	"github.com/gyroctl/gyroctl/pkg/transport/websocket"
)

func NewConfiguration() Configuration {
	return Configuration{
		Type:      transport.TypeDefault,
		Ble:       ble.NewConfiguration(),
		Websocket: websocket.NewConfiguration(),
		Mqtt:      mqtt.NewConfiguration(),
		Serial:    serial.NewConfiguration(),
	}
}

type Configuration struct {
	Type      transport.Type          `yaml:"type"`
	Ble       ble.Configuration       `yaml:"ble,omitempty"`
	Websocket websocket.Configuration `yaml:"websocket,omitempty"`
	Mqtt      mqtt.Configuration      `yaml:"mqtt,omitempty"`
	Serial    serial.Configuration    `yaml:"serial,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport", "Transport to receive the sample stream over. All possible values: "+transport.AllTypes.String()).
		Envar("GYROCTL_TRANSPORT").
		SetValue(&this.Type)

	this.Ble.SetupConfiguration(using)
	this.Websocket.SetupConfiguration(using)
	this.Mqtt.SetupConfiguration(using)
	this.Serial.SetupConfiguration(using)
}
