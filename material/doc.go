// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package material defines the events a capture dialog sends to its parent form.

A dialog never writes the form draft. It emits one of:

	MaterialConfirmed{Kind, URL, LocalRef}  a server-accepted asset is attached
	MaterialCleared{Kind}                   the slot has no material

The form subscribes through the Listener interface and folds events into its
draft. Only URLs the remote service confirmed ever travel in an event.
*/
package material
