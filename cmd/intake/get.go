// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/meo-custom/uploadclient"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <orderNo>",
		Short: "Print the intake stored for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.clientConfig()
			if err != nil {
				return err
			}

			out := uploadclient.New(cfg.Upload()).GetIntake(cmd.Context(), args[0])
			if !out.OK() {
				return fmt.Errorf("get intake %s: %s", args[0], out.Reason)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(newStoredIntake(out.Value)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
