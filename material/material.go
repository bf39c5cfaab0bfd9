// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package material

// Kind names which material slot an event refers to.
type Kind string

const (
	Voice  Kind = "voice"
	Avatar Kind = "avatar"
)

// Action is what happened to the slot.
type Action int

const (
	Confirmed Action = iota + 1
	Cleared
)

func (a Action) String() string {
	switch a {
	case Confirmed:
		return "confirmed"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is emitted by a capture dialog toward the form that opened it.
// URL is empty for Cleared. LocalRef is the original local media reference
// (for avatars, the originally selected photo) and may be empty.
type Event struct {
	Kind     Kind
	Action   Action
	URL      string
	LocalRef string
}

// MaterialConfirmed builds a Confirmed event.
func MaterialConfirmed(kind Kind, url, localRef string) Event {
	return Event{Kind: kind, Action: Confirmed, URL: url, LocalRef: localRef}
}

// MaterialCleared builds a Cleared event.
func MaterialCleared(kind Kind) Event {
	return Event{Kind: kind, Action: Cleared}
}

// Listener receives material events.
type Listener interface {
	OnMaterial(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnMaterial(e Event) { f(e) }

// Discard is a Listener that drops every event.
var Discard Listener = ListenerFunc(func(Event) {})

// Recorder collects events in order. Useful for tests and headless drivers.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnMaterial(e Event) { r.Events = append(r.Events, e) }

// Last returns the most recent event, or false when none arrived.
func (r *Recorder) Last() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}
