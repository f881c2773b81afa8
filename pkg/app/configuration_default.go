package app

import (
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/gyroctl/gyroctl/pkg/common"
	"github.com/gyroctl/gyroctl/pkg/gyro"
	"github.com/gyroctl/gyroctl/pkg/transport/facade"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,

		facade.NewConfiguration(),
		gyro.NewConfiguration(),

		5 * time.Second,
		250 * time.Millisecond,
		5 * time.Second,
		2 * time.Second,

		common.Regexp{},
		common.Regexp{},
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	Transport facade.Configuration `yaml:"transport,omitempty"`
	Gyro      gyro.Configuration   `yaml:"gyro,omitempty"`

	// SessionRefreshInterval is how often the render endpoint and its playing
	// sessions are re-inspected for display.
	SessionRefreshInterval time.Duration `yaml:"sessionRefreshInterval,omitempty"`

	// SnapshotInterval throttles how often sample-driven snapshots reach the
	// display sinks.
	SnapshotInterval time.Duration `yaml:"snapshotInterval,omitempty"`

	// ReconnectInterval is the pause before the transport is started again
	// after a link loss.
	ReconnectInterval time.Duration `yaml:"reconnectInterval,omitempty"`

	// LogThrottle caps how often a volume adjustment is logged.
	LogThrottle time.Duration `yaml:"logThrottle,omitempty"`

	IncludedSessionIdentifiers common.Regexp `yaml:"includedSessionIdentifiers,omitempty"`
	ExcludedSessionIdentifiers common.Regexp `yaml:"excludedSessionIdentifiers,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("GYROCTL_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("sessionRefreshInterval", "How often the render endpoint and its playing sessions are re-inspected.").
		Envar("GYROCTL_SESSION_REFRESH_INTERVAL").
		DurationVar(&this.SessionRefreshInterval)
	using.Flag("snapshotInterval", "How often sample-driven snapshots may reach the display sinks.").
		Envar("GYROCTL_SNAPSHOT_INTERVAL").
		DurationVar(&this.SnapshotInterval)
	using.Flag("reconnectInterval", "Pause before the transport is started again after a link loss.").
		Envar("GYROCTL_RECONNECT_INTERVAL").
		DurationVar(&this.ReconnectInterval)
	using.Flag("logThrottle", "How often a volume adjustment may be logged.").
		Envar("GYROCTL_LOG_THROTTLE").
		DurationVar(&this.LogThrottle)
	using.Flag("includedSessionIdentifiers", "Which session identifiers should be shown as playing.").
		Envar("GYROCTL_INCLUDED_SESSION_IDENTIFIERS").
		SetValue(&this.IncludedSessionIdentifiers)
	using.Flag("excludedSessionIdentifiers", "Which session identifiers should not be shown as playing.").
		Envar("GYROCTL_EXCLUDED_SESSION_IDENTIFIERS").
		SetValue(&this.ExcludedSessionIdentifiers)

	this.Transport.SetupConfiguration(using)
	this.Gyro.SetupConfiguration(using)
}

func defaultConfigurationFile() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		fs, err := os.Stat(appData)
		if err == nil && fs.IsDir() {
			return filepath.Join(appData, "gyroctl", "configuration.yml")
		}
	}

	u, err := user.Current()
	if err != nil {
		return "configuration.yml"
	}

	return filepath.Join(u.HomeDir, ".config", "gyroctl", "configuration.yml")
}
