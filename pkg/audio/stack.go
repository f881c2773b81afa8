//go:build !windows

package audio

import (
	"fmt"

	"github.com/gyroctl/gyroctl/pkg/common"
)

// Stack on non-Windows platforms is a stub. The dispatcher surfaces its
// errors to the log panel instead of crashing, so the application still runs
// and shows the sensor stream.
type Stack struct{}

func (this *Stack) SetupConfiguration(_ common.FlagHolder) {}

func (this *Stack) Initialize() error {
	return nil
}

func (this *Stack) Dispose() error {
	return nil
}

func (this *Stack) SetVolume(int) error {
	return fmt.Errorf("%w: no audio backend for this platform", ErrDeviceUnavailable)
}

func (this *Stack) GetVolume() (int, error) {
	return 0, fmt.Errorf("%w: no audio backend for this platform", ErrDeviceUnavailable)
}

func (this *Stack) SendMediaToggle() error {
	return fmt.Errorf("%w: no audio backend for this platform", ErrDeviceUnavailable)
}

func (this *Stack) Introspect() (Endpoint, error) {
	return Endpoint{}, fmt.Errorf("%w: no audio backend for this platform", ErrDeviceUnavailable)
}
