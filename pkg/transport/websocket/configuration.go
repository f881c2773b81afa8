package websocket

import (
	"time"

	"github.com/gyroctl/gyroctl/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		"ws://localhost:8765/gyro",
		10 * time.Second,
	}
}

type Configuration struct {
	// URL of the endpoint which streams one sample per text frame.
	URL string `yaml:"url"`

	// DialTimeout bounds one connection attempt.
	DialTimeout time.Duration `yaml:"dialTimeout,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport.websocket.url", "URL of the websocket endpoint which streams the samples.").
		Envar("GYROCTL_TRANSPORT_WEBSOCKET_URL").
		StringVar(&this.URL)
	using.Flag("transport.websocket.dialTimeout", "How long one connection attempt may take.").
		Envar("GYROCTL_TRANSPORT_WEBSOCKET_DIAL_TIMEOUT").
		DurationVar(&this.DialTimeout)
}
