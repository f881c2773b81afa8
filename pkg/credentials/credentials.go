package credentials

import (
	"encoding/json"
)

const appName = "github.com/gyroctl/gyroctl"

// Credentials holds the secrets the application needs across restarts,
// currently only the broker login of the MQTT transport. Persisted in the
// platform credential store where one exists; never in the YAML
// configuration.
type Credentials struct {
	MqttUsername string `json:"mqtt_username,omitempty"`
	MqttPassword string `json:"mqtt_password,omitempty"`
}

func (this *Credentials) IsZero() bool {
	return this.IsMqttZero()
}

func (this *Credentials) IsMqttZero() bool {
	return this.MqttUsername == "" && this.MqttPassword == ""
}

func (this *Credentials) MarshalBinary() (data []byte, err error) {
	return json.Marshal(this)
}

func (this *Credentials) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, this)
}
