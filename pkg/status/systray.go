package status

import (
	"fmt"
	"strings"

	"github.com/getlantern/systray"

	"github.com/gyroctl/gyroctl/pkg/common"
)

// Systray shows the link state as the tray icon and the latest readings in
// the tooltip.
type Systray struct {
	IconLinked   []byte
	IconUnlinked []byte
}

func (this *Systray) SetupConfiguration(_ common.FlagHolder) {}

func (this *Systray) Initialize() error {
	if len(this.IconLinked) == 0 {
		return fmt.Errorf("IconLinked is empty")
	}
	if len(this.IconUnlinked) == 0 {
		return fmt.Errorf("IconUnlinked is empty")
	}
	return nil
}

func (this *Systray) Dispose() error {
	return nil
}

func (this *Systray) Notify(snapshot Snapshot) error {
	if !snapshot.Link.IsLinked() {
		systray.SetIcon(this.IconUnlinked)
		systray.SetTooltip(fmt.Sprintf("Peripheral: %v", snapshot.Link))
		return nil
	}

	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Peripheral: %v", snapshot.Link)
	if snapshot.Peripheral != "" {
		_, _ = fmt.Fprintf(&sb, " %s", snapshot.Peripheral)
	}
	if v := snapshot.LastSample; v != nil {
		_, _ = fmt.Fprintf(&sb, "\n%v", *v)
	}
	_, _ = fmt.Fprintf(&sb, "\nVolume: %d%%", snapshot.Volume)
	if snapshot.Endpoint.Sessions.HasContent() {
		_, _ = fmt.Fprintf(&sb, "\nPlaying: %v", snapshot.Endpoint.Sessions)
	}

	systray.SetIcon(this.IconLinked)
	systray.SetTooltip(sb.String())

	return nil
}

var _ Sink = &Systray{}
