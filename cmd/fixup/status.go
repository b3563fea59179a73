// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/migration"
	"github.com/walteh/fixup/pkg/operation"
	"github.com/walteh/fixup/pkg/status"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [migration...]",
		Short: "Report whether migrations still have fragments to rewrite",
		Long: `Status checks each selected migration's target file and reports
whether any of its fragment patterns still match, without writing
anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := newRootOpts(ctx)
			if err != nil {
				return err
			}

			migrations, err := migration.Resolve(args)
			if err != nil {
				return err
			}

			formatter := status.NewDefaultFileFormatter()
			ops := make([]operation.Operation, 0, len(migrations))
			for _, m := range migrations {
				op, err := operation.NewStatusOperation(operation.Options{
					Files:     opts.Files,
					Reporter:  opts.UserLogger,
					Migration: m,
				}, cmd.OutOrStdout(), formatter)
				if err != nil {
					return errors.Errorf("creating status operation: %w", err)
				}
				ops = append(ops, op)
			}

			// Status is read-only; run sequentially for stable output
			runner := operation.NewRunner(zerolog.Ctx(ctx), false)
			if err := runner.Run(ctx, ops...); err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			return nil
		},
	}

	return cmd
}
