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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/fileops"
	"github.com/walteh/fixup/pkg/rewrite"
	"github.com/walteh/fixup/pkg/status"
)

// ✏️ ApplyOperation rewrites one migration's target file in place. The whole
// file is read into memory, the transformations run in order over the
// evolving text, and the result is written back atomically.
type ApplyOperation struct {
	opts Options
}

// 🏭 NewApplyOperation creates a new apply operation
func NewApplyOperation(opts Options) (*ApplyOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &ApplyOperation{opts: opts}, nil
}

// Name implements Operation
func (op *ApplyOperation) Name() string {
	return "apply " + op.opts.Migration.Name
}

// Execute implements Operation
func (op *ApplyOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	m := op.opts.Migration

	op.opts.Reporter.LogMigrationStart(m.Name, m.Target)

	content, err := op.opts.Files.ReadFile(ctx, m.Target)
	if err != nil {
		op.opts.Reporter.LogFileChange(status.FileChange{
			Type:  status.FileError,
			Path:  m.Target,
			Error: err,
		})
		op.opts.Files.TrackFile(ctx, m.Target, fileops.FileInfo{
			Status: fileops.StatusMissing,
			Error:  err,
		})
		return errors.Errorf("reading target of %s: %w", m.Name, err)
	}

	engine := rewrite.NewEngine(op.opts.Strict)
	result, err := engine.Apply(ctx, m.Target, content, m.Transformations)
	if err != nil {
		op.opts.Reporter.LogFileChange(status.FileChange{
			Type:  status.FileError,
			Path:  m.Target,
			Error: err,
		})
		return errors.Errorf("applying %s: %w", m.Name, err)
	}

	if !result.WasModified {
		// Nothing matched; the file is already migrated (or never had the
		// fragments), so no write happens and the content stays byte-identical.
		logger.Debug().Str("migration", m.Name).Msg("no patterns matched, leaving file untouched")
		op.opts.Reporter.LogFileChange(status.FileChange{
			Type: status.FileUnchanged,
			Path: m.Target,
		})
		op.opts.Files.TrackFile(ctx, m.Target, fileops.FileInfo{
			Status: fileops.StatusApplied,
			Size:   int64(len(content)),
		})
		return nil
	}

	if err := op.opts.Files.WriteFileAtomic(ctx, m.Target, result.ModifiedContent); err != nil {
		op.opts.Reporter.LogFileChange(status.FileChange{
			Type:  status.FileError,
			Path:  m.Target,
			Error: err,
		})
		return errors.Errorf("writing target of %s: %w", m.Name, err)
	}

	op.opts.Reporter.LogFileChange(status.FileChange{
		Type:        status.FileRewritten,
		Path:        m.Target,
		Description: fmt.Sprintf("%d replacements", result.ReplacementCount),
	})
	op.opts.Files.TrackFile(ctx, m.Target, fileops.FileInfo{
		Status:       fileops.StatusRewritten,
		Size:         int64(len(result.ModifiedContent)),
		Replacements: result.ReplacementCount,
	})

	logger.Info().
		Str("migration", m.Name).
		Str("target", m.Target).
		Int("replacements", result.ReplacementCount).
		Msg("target rewritten")
	return nil
}
