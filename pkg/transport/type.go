package transport

import (
	"fmt"
	"strings"
)

type Type uint8

const (
	TypeBle       = Type(0)
	TypeWebsocket = Type(1)
	TypeMqtt      = Type(2)
	TypeSerial    = Type(3)

	TypeDefault = TypeBle
)

var (
	AllTypes = Types{
		TypeBle,
		TypeWebsocket,
		TypeMqtt,
		TypeSerial,
	}
)

func (this *Type) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "ble", "bluetooth":
		*this = TypeBle
		return nil
	case "websocket", "ws":
		*this = TypeWebsocket
		return nil
	case "mqtt":
		*this = TypeMqtt
		return nil
	case "serial":
		*this = TypeSerial
		return nil
	default:
		return fmt.Errorf("illegal-transport-type: %s", plain)
	}
}

func (this Type) String() string {
	switch this {
	case TypeBle:
		return "ble"
	case TypeWebsocket:
		return "websocket"
	case TypeMqtt:
		return "mqtt"
	case TypeSerial:
		return "serial"
	default:
		return fmt.Sprintf("illegal-transport-type-%d", this)
	}
}

func (this Type) MarshalText() (text []byte, err error) {
	switch this {
	case TypeBle, TypeWebsocket, TypeMqtt, TypeSerial:
		return []byte(this.String()), nil
	default:
		return nil, fmt.Errorf("illegal transport type: %d", this)
	}
}

func (this *Type) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Types []Type

func (this Types) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Types) String() string {
	return strings.Join(this.Strings(), ",")
}
