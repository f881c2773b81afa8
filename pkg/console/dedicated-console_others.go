//go:build !windows

package console

import "fmt"

func NewDedicatedConsole(string) (*DedicatedConsole, error) {
	return nil, fmt.Errorf("dedicated console is not supported on this platform")
}

func (this *DedicatedConsole) Close() error {
	return nil
}
