package audio

import (
	"fmt"
	"strings"
)

// Session describes one active render session on the default endpoint, i.e.
// an application that is currently playing sound. Display only; dispatching
// never depends on sessions.
type Session struct {
	Identifier string `json:"identifier,omitempty"`
	HolderPid  uint32 `json:"pid,omitempty"`
	Process    string `json:"process,omitempty"`
}

func (this Session) String() string {
	if this.Process != "" {
		return fmt.Sprintf("%s[%d]", this.Process, this.HolderPid)
	}
	return fmt.Sprintf("pid[%d]", this.HolderPid)
}

type Sessions []Session

func (this Sessions) IsZero() bool {
	return len(this) <= 0
}

func (this Sessions) HasContent() bool {
	return !this.IsZero()
}

func (this Sessions) String() string {
	strs := make([]string, len(this))
	for i, v := range this {
		strs[i] = v.String()
	}
	return strings.Join(strs, ", ")
}

// Filtered returns the sessions for which the predicate holds.
func (this Sessions) Filtered(predicate func(*Session) bool) Sessions {
	var result Sessions
	for _, v := range this {
		if predicate(&v) {
			result = append(result, v)
		}
	}
	return result
}
