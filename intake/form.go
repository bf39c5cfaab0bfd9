// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/meo-custom/avatar"
	"github.com/danielhkuo/meo-custom/material"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/steps"
	"github.com/danielhkuo/meo-custom/uploadclient"
	"github.com/danielhkuo/meo-custom/validation"
	"github.com/danielhkuo/meo-custom/voice"
)

var (
	ErrNotEditing    = errors.New("intake: form is not editable")
	ErrNotAwaiting   = errors.New("intake: no submission awaiting confirmation")
	ErrNotSubmitted  = errors.New("intake: intake has not been submitted")
	ErrSuperseded    = errors.New("intake: save response arrived for a reset form")
	ErrOrderRequired = errors.New("intake: a valid order number is required first")
	ErrSaving        = errors.New("intake: save in progress")
)

// PersonalityTemplate is the sample personality description users may adopt.
const PersonalityTemplate = "比如：在交流中，经常是自由发散的聊天。回复要简洁，答案不必详尽无遗，就像人类不可能知道所有信息一样。既提供情绪支持，又给出逻辑明晰、条理清楚且充满人情味的建议或解答。"

// ConfirmWarning is shown while a submission awaits confirmation.
const ConfirmWarning = "请确认素材，一经提交即进入定制生产流程，无法退款！"

// Phase is the controller state.
type Phase int

const (
	Editing Phase = iota
	AwaitingConfirmation
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Client is the remote API the form and its dialogs use.
type Client interface {
	voice.Uploader
	avatar.Uploader
	SaveIntake(ctx context.Context, draft models.FormDraft) uploadclient.Outcome[struct{}]
	GetIntake(ctx context.Context, orderNo string) uploadclient.Outcome[models.CustomInfo]
}

// Options wires a form.
type Options struct {
	Client    Client
	Navigator *steps.Navigator
	Limits    *validation.Limits

	Microphone voice.Microphone
	Player     voice.Player
}

// Form owns the intake draft. Dialogs it opens report back through OnMaterial.
type Form struct {
	client     Client
	nav        *steps.Navigator
	limits     validation.Limits
	microphone voice.Microphone
	player     voice.Player

	mu        sync.Mutex
	phase     Phase
	gen       uint64
	submitted bool
	draft     models.FormDraft
}

// New creates a form. When a navigator is given, leaving Intake requires a
// confirmed save, returning from Intake is refused while a save is in flight,
// and a navigator Reset clears the form.
func New(opts Options) *Form {
	f := &Form{
		client:     opts.Client,
		nav:        opts.Navigator,
		limits:     validation.DefaultLimits(),
		microphone: opts.Microphone,
		player:     opts.Player,
	}
	if opts.Limits != nil {
		f.limits = *opts.Limits
	}
	if f.nav != nil {
		f.nav.SetGate(steps.Intake, f.gate)
		f.nav.SetBackGate(steps.Intake, f.backGate)
		f.nav.OnReset(f.Reset)
	}
	return f
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() models.FormDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Phase returns the controller state.
func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Field mutators. Each returns ErrNotEditing outside Editing.

func (f *Form) SetOrderNumber(v string) error {
	return f.edit(func(d *models.FormDraft) { d.OrderNumber = v })
}

func (f *Form) SetRecipientName(v string) error {
	return f.edit(func(d *models.FormDraft) { d.RecipientName = v })
}

func (f *Form) SetRecipientPhone(v string) error {
	return f.edit(func(d *models.FormDraft) { d.RecipientPhone = v })
}

func (f *Form) SetPersonality(v string) error {
	return f.edit(func(d *models.FormDraft) { d.PersonalityDescription = v })
}

// UsePersonalityTemplate replaces the personality description with
// PersonalityTemplate.
func (f *Form) UsePersonalityTemplate() error {
	return f.SetPersonality(PersonalityTemplate)
}

func (f *Form) edit(fn func(*models.FormDraft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != Editing {
		return ErrNotEditing
	}
	fn(&f.draft)
	return nil
}

// OnMaterial folds a dialog event into the draft. Events outside Editing are
// ignored.
func (f *Form) OnMaterial(e material.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != Editing {
		slog.Warn("material event ignored", "kind", string(e.Kind), "action", e.Action.String(), "phase", f.phase.String())
		return
	}

	switch e.Kind {
	case material.Voice:
		if e.Action == material.Confirmed {
			f.draft.ConfirmedAudioURL = e.URL
		} else {
			f.draft.ConfirmedAudioURL = ""
		}
	case material.Avatar:
		if e.Action == material.Confirmed {
			f.draft.ConfirmedAvatarURL = e.URL
			f.draft.OriginalPhotoURL = e.LocalRef
		} else {
			f.draft.ConfirmedAvatarURL = ""
			f.draft.OriginalPhotoURL = ""
		}
	}
	slog.Debug("material updated", "kind", string(e.Kind), "action", e.Action.String())
}

// OpenVoice opens a voice capture dialog for the current order number.
func (f *Form) OpenVoice(opts voice.Options) (*voice.Dialog, error) {
	orderNo, err := f.dialogOrder()
	if err != nil {
		return nil, err
	}
	opts.Listener = f
	if opts.Uploader == nil {
		opts.Uploader = f.client
	}
	if opts.Microphone == nil {
		opts.Microphone = f.microphone
	}
	if opts.Player == nil {
		opts.Player = f.player
	}
	return voice.Open(orderNo, opts), nil
}

// OpenAvatar opens an avatar dialog for the current order number.
func (f *Form) OpenAvatar(gender models.Gender) (*avatar.Dialog, error) {
	orderNo, err := f.dialogOrder()
	if err != nil {
		return nil, err
	}
	limits := f.limits
	return avatar.Open(orderNo, avatar.Options{
		Uploader: f.client,
		Listener: f,
		Gender:   gender,
		Limits:   &limits,
	}), nil
}

func (f *Form) dialogOrder() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != Editing {
		return "", ErrNotEditing
	}
	if !f.limits.OrderNumberValid(f.draft.OrderNumber) {
		return "", ErrOrderRequired
	}
	return f.draft.CustomInfo().OrderNo, nil
}

// Validate runs every rule against the draft.
func (f *Form) Validate() []validation.Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limits.CheckIntake(f.draft.Intake())
}

// Submit validates the draft. Every failing rule is reported at once in a
// *models.ValidationError and the form stays in Editing. On success the form
// awaits confirmation of ConfirmWarning.
func (f *Form) Submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != Editing {
		return ErrNotEditing
	}
	if failures := f.limits.CheckIntake(f.draft.Intake()); len(failures) > 0 {
		slog.Debug("intake validation failed", "fields", len(failures))
		return &models.ValidationError{Failures: failures}
	}
	f.phase = AwaitingConfirmation
	return nil
}

// Cancel returns from AwaitingConfirmation to Editing.
func (f *Form) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != AwaitingConfirmation {
		return ErrNotAwaiting
	}
	f.phase = Editing
	return nil
}

// Confirm saves the draft. On success the navigator advances from Intake to
// Completion and the draft is cleared. On failure the form returns to Editing with every
// field and material URL kept.
func (f *Form) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != AwaitingConfirmation {
		f.mu.Unlock()
		return ErrNotAwaiting
	}
	if f.client == nil {
		f.mu.Unlock()
		return models.NewError(models.KindTransport, "intake.Confirm", "save is not configured", nil)
	}
	f.phase = Submitting
	gen := f.gen
	draft := f.draft
	f.mu.Unlock()

	out := f.client.SaveIntake(ctx, draft)

	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		slog.Debug("dropping stale save response", "order_no", draft.OrderNumber)
		return ErrSuperseded
	}
	if !out.OK() {
		f.phase = Editing
		f.mu.Unlock()
		slog.Warn("intake save failed", "order_no", draft.OrderNumber, "status", out.Status, "reason", out.Reason)
		return out.Err()
	}
	f.submitted = true
	f.mu.Unlock()

	slog.Info("intake submitted", "order_no", draft.OrderNumber, "request_id", out.RequestID)

	if f.nav != nil {
		if err := f.nav.NextFrom(steps.Intake); err != nil {
			// saved but off Intake; keep the draft so Next can still complete
			f.mu.Lock()
			f.phase = Editing
			f.mu.Unlock()
			return fmt.Errorf("intake saved but navigation failed: %w", err)
		}
	}
	f.Reset()
	return nil
}

// Reset clears the draft and returns to Editing. A save in flight is detached.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.draft = models.FormDraft{}
	f.phase = Editing
	f.submitted = false
}

// Load pre-fills the draft from the intake stored for the current order
// number.
func (f *Form) Load(ctx context.Context) error {
	orderNo, err := f.dialogOrder()
	if err != nil {
		return err
	}
	if f.client == nil {
		return models.NewError(models.KindTransport, "intake.Load", "fetch is not configured", nil)
	}

	f.mu.Lock()
	gen := f.gen
	f.mu.Unlock()

	out := f.client.GetIntake(ctx, orderNo)
	if !out.OK() {
		return out.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.phase != Editing {
		return ErrSuperseded
	}
	f.draft = models.DraftFromCustomInfo(out.Value)
	return nil
}

func (f *Form) backGate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == Submitting {
		return ErrSaving
	}
	return nil
}

func (f *Form) gate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.submitted {
		return ErrNotSubmitted
	}
	return nil
}
