// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	e := MaterialConfirmed(Avatar, "https://cdn/a.png", "local.png")
	assert.Equal(t, Event{Kind: Avatar, Action: Confirmed, URL: "https://cdn/a.png", LocalRef: "local.png"}, e)

	c := MaterialCleared(Voice)
	assert.Equal(t, Voice, c.Kind)
	assert.Equal(t, Cleared, c.Action)
	assert.Empty(t, c.URL)
	assert.Equal(t, "cleared", c.Action.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	var l Listener = &r
	l.OnMaterial(MaterialCleared(Avatar))
	l.OnMaterial(MaterialConfirmed(Voice, "u", ""))

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, Voice, last.Kind)
	assert.Len(t, r.Events, 2)
}

func TestListenerFunc(t *testing.T) {
	var got []Event
	l := ListenerFunc(func(e Event) { got = append(got, e) })
	l.OnMaterial(MaterialCleared(Voice))
	Discard.OnMaterial(MaterialCleared(Voice))
	assert.Len(t, got, 1)
}
