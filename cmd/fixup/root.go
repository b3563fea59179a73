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
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/config"
	"github.com/walteh/fixup/pkg/fileops"
	"github.com/walteh/fixup/pkg/migration"
	"github.com/walteh/fixup/pkg/status"
)

const defaultConfigFile = ".fixup.yaml"

var (
	// Flags
	configFile string
	baseDir    string
	debug      bool
	strict     bool
	async      bool
)

// rootOpts contains shared dependencies used by all commands
type rootOpts struct {
	Config     *config.Config
	Files      *fileops.Manager
	UserLogger *status.UserLogger
}

// newRootCmd creates the root command with all subcommands attached
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fixup",
		Short: "Apply one-shot source migrations to known files",
		Long: `fixup rewrites a known source file by applying a named migration:
an ordered list of fragment replacements applied over the whole file,
written back atomically. Migrations are built in or defined in a
.fixup.yaml / .fixup.hcl config file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "directory target paths are resolved against")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail when a pattern matches zero or multiple times")
	rootCmd.PersistentFlags().BoolVar(&async, "async", false, "apply independent migrations concurrently")

	rootCmd.AddCommand(
		newApplyCmd(),
		newStatusCmd(),
		newListCmd(),
	)

	return rootCmd
}

// newRootOpts builds the shared dependencies from parsed flags. Config-defined
// migrations are registered alongside the built-ins.
func newRootOpts(ctx context.Context) (*rootOpts, error) {
	userLogger := status.NewUserLogger(ctx)

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		// The default config file is optional; anything else must exist.
		if errors.Is(err, os.ErrNotExist) && configFile == defaultConfigFile {
			cfg = config.Default()
		} else {
			return nil, errors.Errorf("loading config: %w", err)
		}
	}

	// Flags override config
	if strict {
		cfg.Strict = true
	}
	if async {
		cfg.Async = true
	}
	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}

	// Register config-defined migrations alongside the built-ins
	migrations, err := cfg.Compile(ctx)
	if err != nil {
		return nil, errors.Errorf("compiling migrations: %w", err)
	}
	for _, m := range migrations {
		if err := migration.Register(m); err != nil {
			return nil, errors.Errorf("registering migration: %w", err)
		}
	}

	return &rootOpts{
		Config:     cfg,
		Files:      fileops.NewManager(cfg.BaseDir),
		UserLogger: userLogger,
	}, nil
}
