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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/migration"
	"github.com/walteh/fixup/pkg/operation"
)

// newApplyCmd creates the apply command
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [migration...]",
		Short: "Apply migrations to their target files",
		Long: `Apply rewrites each selected migration's target file in place.
With no arguments every registered migration is applied. Each target is
read fully into memory, rewritten fragment by fragment, and written back
through a temp-file rename so the original is never left half-written.`,
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

			// Concurrent runs are only safe across distinct target files
			if opts.Config.Async {
				if err := operation.DistinctTargets(migrations); err != nil {
					return errors.Errorf("cannot apply concurrently: %w", err)
				}
			}

			ops := make([]operation.Operation, 0, len(migrations))
			for _, m := range migrations {
				op, err := operation.NewApplyOperation(operation.Options{
					Files:     opts.Files,
					Reporter:  opts.UserLogger,
					Migration: m,
					Strict:    opts.Config.Strict,
				})
				if err != nil {
					return errors.Errorf("creating apply operation: %w", err)
				}
				ops = append(ops, op)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), opts.Config.Async)
			if err := runner.Run(ctx, ops...); err != nil {
				return errors.Errorf("applying migrations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "File updated successfully!")
			return nil
		},
	}

	return cmd
}
