// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package steps

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrAcknowledgeRequired = errors.New("steps: notice must be acknowledged first")
	ErrInvalidTransition   = errors.New("steps: transition not allowed")
)

// Step is a stage of the intake flow.
type Step int

const (
	Welcome Step = iota
	Notice
	Intake
	Completion
)

func (s Step) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Notice:
		return "notice"
	case Intake:
		return "intake"
	case Completion:
		return "completion"
	default:
		return "unknown"
	}
}

// Gate vetoes leaving a step by returning an error.
type Gate func() error

// Navigator is the linear welcome, notice, intake, completion flow.
type Navigator struct {
	mu           sync.Mutex
	current      Step
	acknowledged bool
	gates        map[Step]Gate
	backGates    map[Step]Gate
	onReset      []func()
	onChange     []func(from, to Step)
}

// New returns a navigator at Welcome with the notice unacknowledged.
func New() *Navigator {
	return &Navigator{gates: make(map[Step]Gate), backGates: make(map[Step]Gate)}
}

// Current returns the active step.
func (n *Navigator) Current() Step {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Acknowledged reports the notice toggle.
func (n *Navigator) Acknowledged() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.acknowledged
}

// Acknowledge sets the notice toggle.
func (n *Navigator) Acknowledge(v bool) {
	n.mu.Lock()
	n.acknowledged = v
	n.mu.Unlock()
}

// SetGate installs the check run before advancing out of step. A nil gate
// removes it.
func (n *Navigator) SetGate(step Step, g Gate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if g == nil {
		delete(n.gates, step)
		return
	}
	n.gates[step] = g
}

// SetBackGate installs the check run before returning from step. A nil gate
// removes it.
func (n *Navigator) SetBackGate(step Step, g Gate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if g == nil {
		delete(n.backGates, step)
		return
	}
	n.backGates[step] = g
}

// OnReset registers fn to run after every Reset.
func (n *Navigator) OnReset(fn func()) {
	n.mu.Lock()
	n.onReset = append(n.onReset, fn)
	n.mu.Unlock()
}

// OnChange registers fn to run after every step change.
func (n *Navigator) OnChange(fn func(from, to Step)) {
	n.mu.Lock()
	n.onChange = append(n.onChange, fn)
	n.mu.Unlock()
}

// Next advances one step.
func (n *Navigator) Next() error {
	n.mu.Lock()
	from := n.current
	n.mu.Unlock()
	return n.NextFrom(from)
}

// NextFrom advances one step only if the navigator is still on from.
func (n *Navigator) NextFrom(from Step) error {
	n.mu.Lock()
	if n.current != from {
		cur := n.current
		n.mu.Unlock()
		return fmt.Errorf("%w: expected %s, on %s", ErrInvalidTransition, from, cur)
	}
	if from == Completion {
		n.mu.Unlock()
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, from)
	}
	if from == Notice && !n.acknowledged {
		n.mu.Unlock()
		return ErrAcknowledgeRequired
	}
	gate := n.gates[from]
	n.mu.Unlock()

	// gates may consult other components, so they run unlocked
	if gate != nil {
		if err := gate(); err != nil {
			return err
		}
	}
	return n.move(from, from+1)
}

// Back returns one step.
func (n *Navigator) Back() error {
	n.mu.Lock()
	from := n.current
	gate := n.backGates[from]
	n.mu.Unlock()

	if from == Welcome {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, from)
	}
	if gate != nil {
		if err := gate(); err != nil {
			return err
		}
	}
	return n.move(from, from-1)
}

// Reset returns from Completion to Welcome, clears the acknowledgment and
// runs the reset hooks.
func (n *Navigator) Reset() error {
	n.mu.Lock()
	if n.current != Completion {
		from := n.current
		n.mu.Unlock()
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, from)
	}
	n.acknowledged = false
	hooks := append([]func(){}, n.onReset...)
	n.mu.Unlock()

	if err := n.move(Completion, Welcome); err != nil {
		return err
	}
	for _, fn := range hooks {
		fn()
	}
	return nil
}

func (n *Navigator) move(from, to Step) error {
	n.mu.Lock()
	if n.current != from {
		cur := n.current
		n.mu.Unlock()
		return fmt.Errorf("%w: step changed to %s", ErrInvalidTransition, cur)
	}
	n.current = to
	hooks := append([]func(Step, Step){}, n.onChange...)
	n.mu.Unlock()

	slog.Debug("step changed", "from", from.String(), "to", to.String())
	for _, fn := range hooks {
		fn(from, to)
	}
	return nil
}
