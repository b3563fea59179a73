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

// Package operation provides the apply and status operations that run
// migrations against their target files.
package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/fileops"
	"github.com/walteh/fixup/pkg/migration"
	"github.com/walteh/fixup/pkg/status"
)

// 🎯 Operation is a unit of work executed by the runner
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies shared by all operations
type Options struct {
	// Files manages target file I/O and status tracking
	Files *fileops.Manager
	// Reporter provides user-facing feedback
	Reporter *status.UserLogger
	// Migration is the migration this operation runs
	Migration *migration.Migration
	// Strict fails the run when a pattern matches zero or multiple times
	Strict bool
}

func (opts *Options) validate() error {
	if opts.Files == nil {
		return errors.Errorf("files manager is required")
	}
	if opts.Reporter == nil {
		return errors.Errorf("reporter is required")
	}
	if opts.Migration == nil {
		return errors.Errorf("migration is required")
	}
	return nil
}

// DistinctTargets checks that no two migrations rewrite the same file.
// Concurrent execution is only safe across distinct targets.
func DistinctTargets(migrations []*migration.Migration) error {
	targets := map[string]string{}
	for _, m := range migrations {
		if prev, ok := targets[m.Target]; ok {
			return errors.Errorf("migrations %q and %q share target %s", prev, m.Name, m.Target)
		}
		targets[m.Target] = m.Name
	}
	return nil
}
