package audio

import (
	"fmt"
	"unsafe"

	"github.com/moutend/go-wca/pkg/wca"
	"github.com/shirou/gopsutil/process"
)

func getSessionsOf(sessionManager *wca.IAudioSessionManager2) (result Sessions, _ error) {
	var enumerator *wca.IAudioSessionEnumerator
	if err := sessionManager.GetSessionEnumerator(&enumerator); err != nil {
		return nil, fmt.Errorf("cannot get audio sessions of render endpoint: %w", err)
	}
	defer enumerator.Release()

	var count int
	if err := enumerator.GetCount(&count); err != nil {
		return nil, fmt.Errorf("cannot get count of audio sessions of render endpoint: %w", err)
	}

	for i := 0; i < count; i++ {
		session, ok, err := introspectSessionOf(enumerator, i)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, session)
		}
	}
	return
}

func introspectSessionOf(sessions *wca.IAudioSessionEnumerator, sessionIndex int) (Session, bool, error) {
	var sessionControl *wca.IAudioSessionControl
	if err := sessions.GetSession(sessionIndex, &sessionControl); err != nil {
		return Session{}, false, fmt.Errorf("cannot get audio session %d of render endpoint: %w", sessionIndex, err)
	}
	defer sessionControl.Release()

	return introspectSession(sessionControl, sessionIndex)
}

func introspectSession(sessionControl *wca.IAudioSessionControl, sessionIndex int) (Session, bool, error) {
	dispatch, err := sessionControl.QueryInterface(wca.IID_IAudioSessionControl2)
	if err != nil {
		return Session{}, false, fmt.Errorf("cannot get audio session control %d of render endpoint: %w", sessionIndex, err)
	}
	sessionControl2 := (*wca.IAudioSessionControl2)(unsafe.Pointer(dispatch))
	defer sessionControl2.Release()

	var pid uint32
	// Exclude the system sounds session.
	if err := sessionControl2.IsSystemSoundsSession(); err == nil {
		return Session{}, false, nil
	} else if err.Error() == "Incorrect function." {
		if err := sessionControl2.GetProcessId(&pid); err != nil {
			return Session{}, false, fmt.Errorf("cannot get PID of process which holds session %d of render endpoint: %w", sessionIndex, err)
		}
	} else {
		return Session{}, false, fmt.Errorf("cannot determine if audio session %d of render endpoint is a system session or not: %w", sessionIndex, err)
	}

	var identifier string
	if err := sessionControl2.GetSessionIdentifier(&identifier); err != nil {
		return Session{}, false, fmt.Errorf("cannot get identifier of session %d of render endpoint: %w", sessionIndex, err)
	}

	var state uint32
	if err := sessionControl.GetState(&state); err != nil {
		return Session{}, false, fmt.Errorf("cannot get state of audio session %d of render endpoint: %w", sessionIndex, err)
	}
	switch state {
	case 1: // AudioSessionStateActive
		return Session{
			Identifier: identifier,
			HolderPid:  pid,
			Process:    processNameOf(pid),
		}, true, nil
	default:
		return Session{}, false, nil
	}
}

// processNameOf is best effort; the session stays useful without a name.
func processNameOf(pid uint32) string {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
