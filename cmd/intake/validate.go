// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/meo-custom/intake"
	"github.com/danielhkuo/meo-custom/validation"
)

func newValidateCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an answers file without contacting the server",
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

			failures := checkAnswers(cfg.Limits(), answers)
			if len(failures) > 0 {
				printFailures(cmd.OutOrStdout(), failures)
				return fmt.Errorf("%d rule(s) failed", len(failures))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Answers YAML file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

// checkAnswers runs the intake rules with local files standing in for the
// uploaded materials, plus the size and type rules for each file.
func checkAnswers(limits validation.Limits, a Answers) []validation.Failure {
	in := validation.Intake{
		OrderNo:     a.OrderNo,
		Phone:       a.Phone,
		Personality: a.Personality,
	}
	if a.UseTemplate && in.Personality == "" {
		in.Personality = intake.PersonalityTemplate
	}

	var fileFailures []validation.Failure
	if a.Voice != "" {
		f, err := readMaterial(a.Voice)
		switch {
		case err != nil:
			fileFailures = append(fileFailures, validation.Failure{Field: validation.FieldAudio, Message: err.Error()})
		case !limits.AudioValid(f.Size(), f.ContentType):
			fileFailures = append(fileFailures, validation.Failure{
				Field:   validation.FieldAudio,
				Message: fmt.Sprintf("%s is not an accepted recording (%s, %d bytes)", f.Name, f.ContentType, f.Size()),
			})
		default:
			in.AudioURL = a.Voice
		}
	}
	if a.Photo != "" {
		f, err := readMaterial(a.Photo)
		switch {
		case err != nil:
			fileFailures = append(fileFailures, validation.Failure{Field: validation.FieldAvatar, Message: err.Error()})
		case !limits.ImageValid(f.Size(), f.ContentType):
			fileFailures = append(fileFailures, validation.Failure{
				Field:   validation.FieldAvatar,
				Message: fmt.Sprintf("%s is not an accepted photo (%s, %d bytes)", f.Name, f.ContentType, f.Size()),
			})
		default:
			in.AvatarURL = a.Photo
		}
	}

	return append(fileFailures, limits.CheckIntake(in)...)
}

func printFailures(w io.Writer, failures []validation.Failure) {
	for _, f := range failures {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
