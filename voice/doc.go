// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voice implements the voice capture dialog.

A Dialog is a session scoped to one opening of the dialog. Open creates it,
Close tears it down.

# States

	Idle -> Recording -> Recorded -> Uploading -> Idle (confirmed, dialog closes)
	                                          \-> Recorded (rejected or transport failure)

  - Start acquires a Microphone. A denied or missing device returns a
    KindDevice error and leaves the state unchanged. From Recorded, Start
    re-records: the previous capture is discarded once the new stream opens.
  - Stop releases the stream and packages the PCM as {orderNo}_{millis}.wav
    with content type audio/wav.
  - TogglePlayback plays or pauses the local recording.
  - Discard drops the recording and emits MaterialCleared.
  - Confirm uploads. Success emits MaterialConfirmed with the server URL and
    closes the session. Failure returns to Recorded, keeps the capture, and
    records the reason in Session().LastError.

While Start waits on the microphone, TogglePlayback, Discard and Confirm
return ErrBusy.

While recording, a ticker goroutine advances the elapsed counter once per
interval (one second by default). It is informational only.

# Cleanup

Close is the one guaranteed release path. It stops any recording, waits for
the capture and ticker goroutines to exit, closes the microphone stream,
pauses playback, clears local state and emits MaterialCleared. It is
idempotent, and does nothing after a successful Confirm.

# Stale Responses

Every Start and Confirm captures the session generation before suspending.
Close bumps the generation, so a microphone or upload result that returns
after Close is discarded with ErrSuperseded instead of reviving the session.
*/
package voice
