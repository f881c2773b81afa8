package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"

	"github.com/gyroctl/gyroctl/pkg/common"
)

const (
	vkMediaPlayPause = 0xB3
	keyEventFKeyUp   = 0x0002
	inputKeyboard    = 1

	hresultAccessDenied = 0x80070005
)

var (
	dllUser32     = syscall.NewLazyDLL("user32.dll")
	procSendInput = dllUser32.NewProc("SendInput")
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keyInput struct {
	inputType uint32
	_         uint32
	ki        keyboardInput
	// The INPUT union is sized by its largest member (MOUSEINPUT).
	_ [8]byte
}

// Stack drives the Windows Core Audio endpoint volume and injects the media
// play/pause key. All COM access goes through short-lived objects per call;
// only the OLE apartment is held for the stack's whole lifetime.
type Stack struct {
	initialized bool
	mutex       sync.RWMutex
}

func (this *Stack) SetupConfiguration(_ common.FlagHolder) {}

func (this *Stack) Initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.initialized {
		return nil
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		return fmt.Errorf("failed to initialize ole: %v", err)
	}

	this.initialized = true
	return nil
}

func (this *Stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.initialized {
		return nil
	}

	ole.CoUninitialize()
	this.initialized = false

	return nil
}

func (this *Stack) SetVolume(level int) error {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return this.withEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		if err := aev.SetMasterVolumeLevelScalar(float32(level)/100, nil); err != nil {
			return fmt.Errorf("cannot set master volume scalar: %w", translateComError(err))
		}
		return nil
	})
}

func (this *Stack) GetVolume() (level int, _ error) {
	err := this.withEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		var scalar float32
		if err := aev.GetMasterVolumeLevelScalar(&scalar); err != nil {
			return fmt.Errorf("cannot get master volume scalar: %w", translateComError(err))
		}
		level = int(math.Round(float64(scalar) * 100))
		return nil
	})
	return level, err
}

// SendMediaToggle presses and releases the media play/pause key once. The
// key press goes to whatever application owns media key handling; there is
// no way to tell whether anybody listened.
func (this *Stack) SendMediaToggle() error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if !this.initialized {
		return fmt.Errorf("not initialized")
	}

	inputs := []keyInput{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkMediaPlayPause}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkMediaPlayPause, dwFlags: keyEventFKeyUp}},
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("%w: cannot inject media key: %v", ErrPermissionDenied, err)
	}
	return nil
}

// Introspect resolves the default render endpoint and its active sessions.
func (this *Stack) Introspect() (Endpoint, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if !this.initialized {
		return Endpoint{}, fmt.Errorf("not initialized")
	}

	device, err := this.defaultRenderDevice()
	if err != nil {
		return Endpoint{}, err
	}
	defer device.Release()

	return this.introspectDevice(device)
}

func (this *Stack) withEndpointVolume(fn func(*wca.IAudioEndpointVolume) error) error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if !this.initialized {
		return fmt.Errorf("not initialized")
	}

	device, err := this.defaultRenderDevice()
	if err != nil {
		return err
	}
	defer device.Release()

	var aev *wca.IAudioEndpointVolume
	if err := device.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return fmt.Errorf("cannot activate IAudioEndpointVolume: %w", translateComError(err))
	}
	defer aev.Release()

	return fn(aev)
}

func (this *Stack) defaultRenderDevice() (*wca.IMMDevice, error) {
	var de *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &de); err != nil {
		return nil, fmt.Errorf("cannot create IMMDeviceEnumerator instance: %w", translateComError(err))
	}
	defer de.Release()

	var device *wca.IMMDevice
	if err := de.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return nil, fmt.Errorf("%w: no default render endpoint: %v", ErrDeviceUnavailable, err)
	}
	return device, nil
}

func (this *Stack) introspectDevice(device *wca.IMMDevice) (Endpoint, error) {
	var propertyStore *wca.IPropertyStore
	if err := device.OpenPropertyStore(wca.STGM_READ, &propertyStore); err != nil {
		return Endpoint{}, fmt.Errorf("cannot get properties of render endpoint: %w", translateComError(err))
	}
	defer propertyStore.Release()

	var name wca.PROPVARIANT
	if err := propertyStore.GetValue(&wca.PKEY_Device_FriendlyName, &name); err != nil {
		return Endpoint{}, fmt.Errorf("cannot get name of render endpoint: %w", translateComError(err))
	}

	var sessionManager *wca.IAudioSessionManager2
	if err := device.Activate(wca.IID_IAudioSessionManager2, wca.CLSCTX_ALL, nil, &sessionManager); err != nil {
		return Endpoint{}, fmt.Errorf("cannot get session manager of render endpoint: %w", translateComError(err))
	}
	defer sessionManager.Release()

	endpoint := Endpoint{Name: name.String()}

	sessions, err := getSessionsOf(sessionManager)
	if err != nil {
		return Endpoint{}, err
	}
	endpoint.Sessions = sessions

	return endpoint, nil
}

// translateComError maps access-denied HRESULTs to ErrPermissionDenied so the
// dispatcher can tell a rejected call from a missing device.
func translateComError(err error) error {
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) && uint32(oleErr.Code()) == hresultAccessDenied {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
