package transport

import (
	"fmt"
	"strings"
)

// State is the link lifecycle of the peripheral connection.
//
//	Disconnected → Scanning → Connected → Streaming → (Disconnected on loss)
type State uint8

const (
	StateDisconnected = State(0)
	StateScanning     = State(1)
	StateConnected    = State(2)
	StateStreaming    = State(3)
)

var (
	AllStates = States{
		StateDisconnected,
		StateScanning,
		StateConnected,
		StateStreaming,
	}
)

func (this *State) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "disconnected":
		*this = StateDisconnected
		return nil
	case "scanning":
		*this = StateScanning
		return nil
	case "connected":
		*this = StateConnected
		return nil
	case "streaming":
		*this = StateStreaming
		return nil
	default:
		return fmt.Errorf("illegal-link-state: %s", plain)
	}
}

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-link-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateDisconnected:
		return []byte("disconnected"), nil
	case StateScanning:
		return []byte("scanning"), nil
	case StateConnected:
		return []byte("connected"), nil
	case StateStreaming:
		return []byte("streaming"), nil
	default:
		return nil, fmt.Errorf("illegal link state: %v", this)
	}
}

func (this *State) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

// IsLinked reports whether samples may be processed in this state.
func (this State) IsLinked() bool {
	return this == StateConnected || this == StateStreaming
}

type States []State

func (this States) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this States) String() string {
	return strings.Join(this.Strings(), ",")
}
