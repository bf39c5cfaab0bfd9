// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package intake implements the intake form controller.

A Form owns the FormDraft. Nothing else writes it: field mutators change the
text fields and the voice and avatar dialogs opened through OpenVoice and
OpenAvatar report material through OnMaterial.

# Phases

	Editing -> AwaitingConfirmation -> Submitting -> (navigator advances, draft cleared)
	              |                        \-> Editing (save failed, draft kept)
	              \-> Editing (Cancel)

Submit runs every validation rule and returns all failures together in a
*models.ValidationError. Confirm performs the save. A confirmed save moves
the navigator from Intake to Completion and clears the draft. A rejected or
failed save returns to Editing with the draft intact so only the save is
retried.

The navigator gate installed by New refuses to leave Intake until a save
has been confirmed, and navigator Reset clears the form.
*/
package intake
