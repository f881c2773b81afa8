package serial

import (
	"github.com/gyroctl/gyroctl/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		"",
		115200,
	}
}

type Configuration struct {
	// Port is the serial device the peripheral is attached to, for example
	// "COM4" or "/dev/ttyUSB0".
	Port string `yaml:"port,omitempty"`

	BaudRate uint `yaml:"baudRate"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport.serial.port", "Serial device the peripheral is attached to, e.g. COM4 or /dev/ttyUSB0.").
		Envar("GYROCTL_TRANSPORT_SERIAL_PORT").
		StringVar(&this.Port)
	using.Flag("transport.serial.baudRate", "Baud rate of the serial link.").
		Envar("GYROCTL_TRANSPORT_SERIAL_BAUD_RATE").
		UintVar(&this.BaudRate)
}
