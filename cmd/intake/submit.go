// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/meo-custom/intake"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/steps"
	"github.com/danielhkuo/meo-custom/uploadclient"
	"github.com/danielhkuo/meo-custom/validation"
	"github.com/danielhkuo/meo-custom/voice"
)

var (
	errNoticeNotAccepted = errors.New("the notice must be acknowledged (pass --accept-notice)")
	errNotConfirmed      = errors.New("submission not confirmed")
)

func newSubmitCmd(opts *options) *cobra.Command {
	var (
		file         string
		acceptNotice bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Upload the materials and save an intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := loadAnswers(file)
			if err != nil {
				return err
			}
			cfg, err := opts.clientConfig()
			if err != nil {
				return err
			}
			s := &submission{
				client:       uploadclient.New(cfg.Upload()),
				limits:       cfg.Limits(),
				answers:      answers,
				acceptNotice: acceptNotice,
				yes:          yes,
				out:          cmd.OutOrStdout(),
				in:           cmd.InOrStdin(),
			}
			return s.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Answers YAML file (required)")
	cmd.Flags().BoolVar(&acceptNotice, "accept-notice", false, "Acknowledge the notice without prompting")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the final submission without prompting")
	cmd.MarkFlagRequired("file")
	return cmd
}

type submission struct {
	client       intake.Client
	limits       validation.Limits
	answers      Answers
	acceptNotice bool
	yes          bool
	out          io.Writer
	in           io.Reader
}

func (s *submission) run(ctx context.Context) error {
	nav := steps.New()
	nav.OnChange(func(from, to steps.Step) {
		slog.Debug("step changed", "from", from.String(), "to", to.String())
	})

	limits := s.limits
	form := intake.New(intake.Options{
		Client:     s.client,
		Navigator:  nav,
		Limits:     &limits,
		Microphone: voice.FileMicrophone{Path: s.answers.Voice},
	})

	if err := nav.Next(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n\n%s\n\n", steps.NoticeTitle, steps.NoticeText)
	if !s.acceptNotice {
		return errNoticeNotAccepted
	}
	nav.Acknowledge(true)
	if err := nav.Next(); err != nil {
		return err
	}

	if err := fillFields(form, s.answers); err != nil {
		return err
	}
	if err := s.uploadPhoto(ctx, form); err != nil {
		return err
	}
	if err := s.recordVoice(ctx, form); err != nil {
		return err
	}

	if err := form.Submit(); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			printFailures(s.out, verr.Failures)
		}
		return err
	}

	fmt.Fprintln(s.out, intake.ConfirmWarning)
	if !s.yes && !s.prompt("Submit now? [y/N] ") {
		form.Cancel()
		return errNotConfirmed
	}

	order := form.Draft().CustomInfo().OrderNo
	if err := form.Confirm(ctx); err != nil {
		return fmt.Errorf("save intake: %s", models.UserMessage(err))
	}
	fmt.Fprintf(s.out, "Intake for order %s submitted (%s)\n", order, nav.Current())
	return nil
}

func fillFields(form *intake.Form, a Answers) error {
	if err := form.SetOrderNumber(a.OrderNo); err != nil {
		return err
	}
	if err := form.SetRecipientName(a.Name); err != nil {
		return err
	}
	if err := form.SetRecipientPhone(a.Phone); err != nil {
		return err
	}
	if a.UseTemplate && strings.TrimSpace(a.Personality) == "" {
		return form.UsePersonalityTemplate()
	}
	return form.SetPersonality(a.Personality)
}

func (s *submission) uploadPhoto(ctx context.Context, form *intake.Form) error {
	if s.answers.Photo == "" {
		slog.Info("no photo given, skipping avatar")
		return nil
	}
	photo, err := readMaterial(s.answers.Photo)
	if err != nil {
		return err
	}

	av, err := form.OpenAvatar(models.ParseGender(s.answers.Gender))
	if err != nil {
		return fmt.Errorf("open avatar: %w", err)
	}
	defer av.Close()

	if err := av.Select(ctx, photo); err != nil {
		if reason := av.Submission().RejectionReason; reason != "" {
			return fmt.Errorf("photo rejected: %s", reason)
		}
		return fmt.Errorf("photo upload: %s", models.UserMessage(err))
	}
	if err := av.Confirm(); err != nil {
		return fmt.Errorf("confirm photo: %w", err)
	}
	fmt.Fprintf(s.out, "Photo accepted: %s\n", photo.Name)
	return nil
}

func (s *submission) recordVoice(ctx context.Context, form *intake.Form) error {
	if s.answers.Voice == "" {
		slog.Info("no voice file given, skipping recording")
		return nil
	}

	fmt.Fprintf(s.out, "%s\n%s\n\n", voice.Prompt, voice.SampleText)

	vd, err := form.OpenVoice(voice.Options{
		OnTick: func(sec int) {
			slog.Debug("recording", "elapsed", voice.FormatElapsed(sec))
		},
	})
	if err != nil {
		return fmt.Errorf("open voice: %w", err)
	}
	defer vd.Close()

	if err := vd.Start(ctx); err != nil {
		return fmt.Errorf("start recording: %s", models.UserMessage(err))
	}
	if err := vd.Stop(); err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}
	rec := vd.Session().Local
	if err := vd.Confirm(ctx); err != nil {
		return fmt.Errorf("voice upload: %s", models.UserMessage(err))
	}
	fmt.Fprintf(s.out, "Voice accepted: %s (%s)\n", rec.File.Name, rec.Duration.Round(100*time.Millisecond))
	return nil
}

func (s *submission) prompt(q string) bool {
	fmt.Fprint(s.out, q)
	line, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
