package audio

import "errors"

var (
	// ErrDeviceUnavailable means the default render endpoint cannot be
	// reached, for example because no output device is active. Surfaced to
	// the log panel; never retried automatically.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrPermissionDenied means the OS rejected the call. Fatal to that
	// dispatch attempt.
	ErrPermissionDenied = errors.New("audio permission denied")
)

// Output is the single capability the dispatcher needs from the OS: master
// volume and the media play/pause key. Platform adapters supply the concrete
// calls; everything above this interface stays portable.
type Output interface {
	SetVolume(level int) error
	GetVolume() (int, error)
	SendMediaToggle() error
}
