package watch

import "time"

const (
	routeIndex  = "/"
	routeStatus = "/status"
	routeEvents = "/events"
)

const sseEventBuild = "build"

// buildEvent is published after every rebuild, successful or not.
type buildEvent struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text,omitempty"`
	Files     []string  `json:"files,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func (e buildEvent) ok() bool {
	return e.Error == ""
}
