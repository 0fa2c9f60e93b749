package ui

import (
	"time"

	"examfinder/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg drives the uptime readout and the loading spinner
type tickMsg time.Time

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// statusMsg sets the status line
type statusMsg struct {
	text    string
	isError bool
}

// clearStatusMsg clears the status line if it still shows the message with seq
type clearStatusMsg struct {
	seq int
}
