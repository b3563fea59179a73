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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/walteh/fixup/pkg/migration"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := newRootOpts(ctx); err != nil {
				return err
			}

			nameColor := color.New(color.FgCyan)
			for _, name := range migration.Names() {
				m, _ := migration.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", nameColor.Sprintf("%-30s", name), m.Description)
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s  target: %s\n", "", m.Target)
			}
			return nil
		},
	}

	return cmd
}
