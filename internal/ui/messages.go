package ui

import (
	"odsearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// NavigateMsg asks the shell to change route
type NavigateMsg struct {
	Path string
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
