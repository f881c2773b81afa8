package mqtt

import (
	"fmt"
	"os"

	"github.com/gyroctl/gyroctl/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		"",
		"gyro/sample",
		0,
		"",
		"",
		defaultClientId(),
	}
}

func defaultClientId() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "gyroctl"
	}
	return fmt.Sprintf("gyroctl-%s", hostname)
}

type Configuration struct {
	// Broker is the address of the MQTT broker, for example
	// "tcp://broker.local:1883".
	Broker string `yaml:"broker,omitempty"`

	// Topic carries one CSV sample per message.
	Topic string `yaml:"topic"`

	// Qos of the subscription.
	Qos byte `yaml:"qos"`

	// Username for the broker. If set and no password is available from the
	// credential store, the password is requested on the terminal once and
	// persisted to the store.
	Username string `yaml:"username,omitempty"`

	// Password for the broker. If set here it will be used and not be
	// persisted; prefer the credential store.
	Password string `yaml:"-"`

	ClientId string `yaml:"clientId,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport.mqtt.broker", "Address of the MQTT broker, e.g. tcp://broker.local:1883.").
		Envar("GYROCTL_TRANSPORT_MQTT_BROKER").
		StringVar(&this.Broker)
	using.Flag("transport.mqtt.topic", "Topic which carries one sample per message.").
		Envar("GYROCTL_TRANSPORT_MQTT_TOPIC").
		StringVar(&this.Topic)
	using.Flag("transport.mqtt.username", "Username to authenticate with at the broker.").
		Envar("GYROCTL_TRANSPORT_MQTT_USERNAME").
		StringVar(&this.Username)
	using.Flag("transport.mqtt.password", "Password to authenticate with at the broker. If omitted it is taken from the credential store or requested on the terminal.").
		Envar("GYROCTL_TRANSPORT_MQTT_PASSWORD").
		StringVar(&this.Password)
	using.Flag("transport.mqtt.clientId", "Client ID to connect with.").
		Envar("GYROCTL_TRANSPORT_MQTT_CLIENT_ID").
		StringVar(&this.ClientId)
}
