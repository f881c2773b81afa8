package app

import (
	"context"
	"math"
	"os"
	"sync/atomic"
	"time"

	"dario.cat/mergo"
	log "github.com/echocat/slf4g"

	"github.com/gyroctl/gyroctl/pkg/audio"
	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/gyro"
	"github.com/gyroctl/gyroctl/pkg/intent"
	"github.com/gyroctl/gyroctl/pkg/status"
	"github.com/gyroctl/gyroctl/pkg/transport"
	"github.com/gyroctl/gyroctl/pkg/transport/facade"
)

func NewApp() *App {
	return &App{
		configFromFlags: NewConfiguration(),
	}
}

type App struct {
	AudioStack        audio.Stack
	Transport         facade.Facade
	Sinks             []status.Sink
	ConfigurationFile string

	configFromFlags Configuration
	config          Configuration

	linkCancel atomic.Pointer[context.CancelFunc]
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.AudioStack.SetupConfiguration(using)
	this.configFromFlags.SetupConfiguration(using)
	for _, s := range this.Sinks {
		s.SetupConfiguration(using)
	}

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		StringVar(&this.ConfigurationFile)
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	if err := this.config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := mergo.Merge(&this.config, this.configFromFlags); err != nil {
		return err
	}

	if err := this.AudioStack.Initialize(); err != nil {
		return err
	}
	if err := this.Transport.Initialize(&this.config.Transport); err != nil {
		return err
	}
	for _, s := range this.Sinks {
		if err := s.Initialize(); err != nil {
			return err
		}
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	success = true
	return nil
}

// Run owns the whole pipeline: a supervisor goroutine keeps the transport
// alive, this goroutine is the single consumer of samples and state changes.
// Interpreter and dispatcher are only ever touched here, so the core needs no
// locking.
func (this *App) Run(ctx context.Context) error {
	ctxInner, cancel := context.WithCancel(ctx)
	defer cancel()

	samples := make(chan gyro.Sample, 64)
	type stateChange struct {
		state  transport.State
		detail string
	}
	states := make(chan stateChange, 16)

	callbacks := transport.Callbacks{
		OnSample: func(v gyro.Sample) {
			// Never block the transport; a sample the consumer cannot take
			// in time is stale anyway.
			select {
			case samples <- v:
			default:
			}
		},
		OnState: func(state transport.State, detail string) {
			states <- stateChange{state, detail}
		},
	}

	go this.superviseTransport(ctxInner, callbacks)

	interpreter := gyro.NewInterpreter(&this.config.Gyro)
	dispatcher := intent.NewDispatcher(&this.AudioStack)

	var snapshot status.Snapshot
	var lastNotifiedAt time.Time
	var lastVolumeLoggedAt time.Time
	volumeDisabledLogged := false

	sessionTicker := time.NewTicker(this.config.SessionRefreshInterval)
	defer sessionTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Consumer loop interrupted.")
			return nil

		case sc := <-states:
			lastState := snapshot.Link
			snapshot.Link = sc.state
			snapshot.Peripheral = sc.detail

			log.With("lastState", lastState).
				With("state", sc.state).
				Info("Link state change detected.")

			switch sc.state {
			case transport.StateConnected:
				// Fresh baseline before any sample of this link is seen.
				interpreter.Reset()
				dispatcher.Forget()
				drainSamples(samples)
				if v, err := this.AudioStack.GetVolume(); err == nil {
					snapshot.Volume = v
				}
			case transport.StateDisconnected:
				// Stale gestures must not fire after a reconnect.
				drainSamples(samples)
				snapshot.LastSample = nil
			}

			this.notifySinks(snapshot)
			lastNotifiedAt = time.Now()

		case sample := <-samples:
			if !snapshot.Link.IsLinked() {
				// In-flight samples of a dead link are dropped.
				continue
			}

			buf := sample
			snapshot.LastSample = &buf

			for _, v := range interpreter.Process(sample) {
				if err := dispatcher.Dispatch(v); err != nil {
					log.WithError(err).
						With("intent", v).
						Warn("Cannot dispatch intent.")
					continue
				}
				switch i := v.(type) {
				case intent.VolumeChange:
					snapshot.Volume = i.Level
					if time.Since(lastVolumeLoggedAt) >= this.config.LogThrottle {
						log.With("sample", sample).
							With("volume", i.Level).
							Info("Volume adjusted.")
						lastVolumeLoggedAt = time.Now()
					}
				case intent.PlaybackToggle:
					log.Info("Gesture detected: toggling playback.")
				}
			}

			if isHeldLevel(interpreter.Snapshot(), &this.config.Gyro, sample) {
				volumeDisabledLogged = false
			} else if !volumeDisabledLogged {
				log.Info("Volume control disabled (peripheral not held level).")
				volumeDisabledLogged = true
			}

			if time.Since(lastNotifiedAt) >= this.config.SnapshotInterval {
				this.notifySinks(snapshot)
				lastNotifiedAt = time.Now()
			}

		case <-sessionTicker.C:
			endpoint, err := this.AudioStack.Introspect()
			if err != nil {
				log.WithError(err).
					Debug("Cannot inspect render endpoint.")
				continue
			}
			endpoint.Sessions = endpoint.Sessions.Filtered(this.isSessionRelevant)
			snapshot.Endpoint = endpoint

			if v, err := this.AudioStack.GetVolume(); err == nil {
				snapshot.Volume = v
			}

			this.notifySinks(snapshot)
			lastNotifiedAt = time.Now()
		}
	}
}

// Refresh tears the current link down; the supervisor reconnects, which
// resets the interpreter exactly like any other reconnect.
func (this *App) Refresh() {
	log.Info("Refresh requested. Reconnecting...")
	if v := this.linkCancel.Load(); v != nil {
		(*v)()
	}
}

func (this *App) superviseTransport(ctx context.Context, callbacks transport.Callbacks) {
	for {
		if ctx.Err() != nil {
			return
		}

		runCtx, cancel := context.WithCancel(ctx)
		this.linkCancel.Store(&cancel)

		err := this.Transport.Run(runCtx, callbacks)
		cancel()
		if err != nil {
			log.WithError(err).
				Error("Transport failed.")
		}
		callbacks.EmitState(transport.StateDisconnected, "")

		log.With("interval", this.config.ReconnectInterval).
			Debug("Wait until the next connection attempt...")
		select {
		case <-ctx.Done():
			return
		case <-time.After(this.config.ReconnectInterval):
		}
	}
}

func (this *App) notifySinks(snapshot status.Snapshot) {
	for _, s := range this.Sinks {
		if err := s.Notify(snapshot); err != nil {
			log.WithError(err).
				Warn("Cannot update display sink.")
		}
	}
}

func (this *App) isSessionRelevant(candidate *audio.Session) bool {
	if v := this.config.IncludedSessionIdentifiers; v.HasContent() {
		if !v.MatchString(candidate.Identifier) {
			return false
		}
	}
	if v := this.config.ExcludedSessionIdentifiers; v.HasContent() {
		if v.MatchString(candidate.Identifier) {
			return false
		}
	}
	return true
}

func (this *App) configurationFile() string {
	if this.ConfigurationFile != "" {
		return this.ConfigurationFile
	}
	return defaultConfigurationFile()
}

func (this *App) saveConf(always bool) error {
	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

func (this *App) Dispose() (rErr error) {
	defer func() {
		if err := this.AudioStack.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	defer func() {
		if err := this.Transport.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	for _, s := range this.Sinks {
		defer func() { _ = s.Dispose() }()
	}

	return nil
}

// isHeldLevel mirrors the interpreter's level check for display purposes
// using only a state copy.
func isHeldLevel(state gyro.State, conf *gyro.Configuration, sample gyro.Sample) bool {
	if !state.BaselineCaptured || !sample.IsValid() {
		return false
	}
	return math.Abs(sample.Pitch-state.PitchBaseline) <= conf.LevelTolerance &&
		math.Abs(sample.Yaw-state.YawBaseline) <= conf.LevelTolerance
}

func drainSamples(ch chan gyro.Sample) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
