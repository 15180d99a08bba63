package domain

import (
	"strings"
	"time"
)

// ActivitySignal is a single timestamped observation of user activity
// (keystroke burst, window focus, calendar event). Signals arrive from
// external agents, possibly unsorted and with duplicate timestamps; the
// pipeline sorts before processing. Immutable once ingested.
type ActivitySignal struct {
	Timestamp time.Time
	// Source is the input modality (keyboard/mouse/window/unknown).
	Source SourceKind
	// Kind is the raw signal type string from the agent, e.g.
	// "keyboard_burst" or "window_focus". Used as a classification fallback.
	Kind   string
	App    *string
	Domain *string
}

// AppName returns the lowercase application name, or "" if absent.
func (s ActivitySignal) AppName() string {
	if s.App == nil {
		return ""
	}
	return strings.ToLower(*s.App)
}

// DomainName returns the lowercase domain, or "" if absent.
func (s ActivitySignal) DomainName() string {
	if s.Domain == nil {
		return ""
	}
	return strings.ToLower(*s.Domain)
}
