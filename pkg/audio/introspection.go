package audio

import (
	"github.com/aretw0/introspection"
)

// ControllerState exposes the tracked session for observability.
// It reports what is tracked without polling the process.
type ControllerState struct {
	Player  string `json:"player"`
	Command string `json:"command"`
	Tracked bool   `json:"tracked"`
	Path    string `json:"path,omitempty"`
	PID     int    `json:"pid,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := ControllerState{
		Player:  c.player.Name,
		Command: c.player.Command,
		Tracked: c.proc != nil,
		Path:    c.path,
	}
	if c.proc != nil {
		state.PID = c.proc.Pid()
	}
	return state
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "audio-controller"
}

var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)
