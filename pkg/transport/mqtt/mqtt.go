package mqtt

import (
	"context"
	"fmt"
	"time"

	log "github.com/echocat/slf4g"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/credentials"
	"github.com/gyroctl/gyroctl/pkg/transport"
)

// Mqtt consumes the sample stream from a broker topic; one CSV payload per
// message. Fits peripherals which already publish their telemetry via MQTT.
type Mqtt struct {
	conf        *Configuration
	credentials credentials.Credentials
}

func (this *Mqtt) Initialize(conf *Configuration) error {
	if conf.Broker == "" {
		return fmt.Errorf("no MQTT broker configured")
	}
	if conf.Topic == "" {
		return fmt.Errorf("no MQTT topic configured")
	}
	this.conf = conf

	return this.resolveCredentials()
}

// resolveCredentials fills in the broker password, if a username is
// configured: explicit flag value first, then the platform credential store,
// finally a terminal prompt whose answer is persisted to the store.
func (this *Mqtt) resolveCredentials() error {
	if this.conf.Username == "" {
		return nil
	}
	if this.conf.Password != "" {
		return nil
	}

	supported, err := this.credentials.ReadFromStore()
	if err != nil {
		return err
	}
	if this.credentials.MqttUsername == this.conf.Username && this.credentials.MqttPassword != "" {
		this.conf.Password = this.credentials.MqttPassword
		return nil
	}

	if err := common.RequestStringContentIfRequiredFromTerminal(&this.conf.Password,
		fmt.Sprintf("password of %q at %s", this.conf.Username, this.conf.Broker), false, true); err != nil {
		return err
	}

	if supported {
		this.credentials.MqttUsername = this.conf.Username
		this.credentials.MqttPassword = this.conf.Password
		if _, err := this.credentials.WriteToStore(); err != nil {
			log.WithError(err).
				Warn("Cannot persist broker credentials; will ask again next time.")
		}
	}

	return nil
}

func (this *Mqtt) Dispose() error {
	return nil
}

func (this *Mqtt) GetType() transport.Type {
	return transport.TypeMqtt
}

func (this *Mqtt) Run(ctx context.Context, callbacks transport.Callbacks) error {
	callbacks.EmitState(transport.StateScanning, this.conf.Broker)

	lost := make(chan error, 1)

	opts := paho.NewClientOptions().
		AddBroker(this.conf.Broker).
		SetClientID(this.conf.ClientId).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			select {
			case lost <- err:
			default:
			}
		})
	if this.conf.Username != "" {
		opts.SetUsername(this.conf.Username).
			SetPassword(this.conf.Password)
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("cannot connect to broker %s: %w", this.conf.Broker, token.Error())
	}
	defer client.Disconnect(250)

	callbacks.EmitState(transport.StateConnected, this.conf.Broker)

	token := client.Subscribe(this.conf.Topic, this.conf.Qos, func(_ paho.Client, message paho.Message) {
		sample, err := transport.DecodeSample(message.Payload(), time.Now())
		if err != nil {
			log.WithError(err).
				Debug("Dropping malformed message.")
			return
		}
		callbacks.EmitSample(sample)
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("cannot subscribe to topic %q: %w", this.conf.Topic, token.Error())
	}

	callbacks.EmitState(transport.StateStreaming, this.conf.Topic)

	select {
	case <-ctx.Done():
		return nil
	case err := <-lost:
		return fmt.Errorf("link to broker %s lost: %w", this.conf.Broker, err)
	}
}
