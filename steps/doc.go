// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package steps is the four-step navigator: Welcome, Notice, Intake, Completion.
// Movement is strictly linear. Leaving Notice needs the acknowledgment toggle,
// and leaving any step runs the gate installed for it in that direction. Reset is only valid from
// Completion.
package steps
