package audio

import "fmt"

// Endpoint is a display snapshot of the default render device and the
// sessions currently playing on it.
type Endpoint struct {
	Name     string   `json:"name"`
	Sessions Sessions `json:"sessions,omitempty"`
}

func (this Endpoint) String() string {
	return fmt.Sprintf("%s (%s)", this.Name, this.Sessions)
}
