package tui

import (
	"fmt"
	"strings"
	"time"
)

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

// statusTTL is how long a message stays in the status bar.
const statusTTL = 4 * time.Second

// Canonical short status messages used across the app.
const (
	MsgNothingSelected = "Nothing selected"
	MsgEmptyCommand    = "Nothing to run"
	MsgNoResults       = "No results"
)

type status struct {
	text string
	kind StatusKind
	seq  int
}

// clearStatusMsg clears the status bar unless a newer message replaced it.
type clearStatusMsg struct {
	seq int
}

func MsgLaunched(name string) string {
	return fmt.Sprintf("Launched %s", strings.TrimSpace(name))
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func (s status) style() string {
	switch s.kind {
	case StatusSuccess:
		return StatusSuccessStyle.Render(s.text)
	case StatusWarn:
		return StatusWarnStyle.Render(s.text)
	case StatusError:
		return StatusErrorStyle.Render(s.text)
	default:
		return StatusInfoStyle.Render(s.text)
	}
}
