// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package avatar implements the avatar acquisition dialog.

# States

	Empty -> LocalPreview -> Uploading -> Confirmed
	                                  \-> LocalPreview (rejected)
	any   -> Empty (Discard)

Selecting a photo is an explicit two-step transition: Select stores the file
as the local preview (LocalPreview) and immediately starts the upload
(Uploading). While uploading, Submission().Saving is true and Select, Retry
and SetGender return ErrBusy.

The upload carries the order number and a gender hint (female unless
SetGender chose otherwise). Confirmed means the server accepted the file and
its detection passed. Any failure returns to LocalPreview with the reason in
RejectionReason so the user can Retry or Discard.

Discard commits "no avatar" to the parent right away by emitting
MaterialCleared, in every state, as often as it is called. Confirm requires
both the preview and the confirmed URL, emits MaterialConfirmed with the URL
and the preview's name as the local reference, and closes the dialog. Close
detaches without notifying the parent.

Late upload responses after Discard, a new Select, or Close are dropped with
ErrSuperseded.
*/
package avatar
