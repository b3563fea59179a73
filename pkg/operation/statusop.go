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
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/fileops"
	"github.com/walteh/fixup/pkg/status"
)

// 🔎 StatusOperation reports whether a migration's fragments still match its
// target, without writing anything.
type StatusOperation struct {
	opts      Options
	out       io.Writer
	formatter status.FileFormatter
}

// 🏭 NewStatusOperation creates a new status operation
func NewStatusOperation(opts Options, out io.Writer, formatter status.FileFormatter) (*StatusOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.Errorf("output writer is required")
	}
	if formatter == nil {
		formatter = status.NewDefaultFileFormatter()
	}
	return &StatusOperation{opts: opts, out: out, formatter: formatter}, nil
}

// Name implements Operation
func (op *StatusOperation) Name() string {
	return "status " + op.opts.Migration.Name
}

// Execute implements Operation
func (op *StatusOperation) Execute(ctx context.Context) error {
	m := op.opts.Migration

	exists, err := op.opts.Files.FileExists(ctx, m.Target)
	if err != nil {
		return errors.Errorf("checking target of %s: %w", m.Name, err)
	}
	if !exists {
		op.opts.Files.TrackFile(ctx, m.Target, fileops.FileInfo{Status: fileops.StatusMissing})
		fmt.Fprintln(op.out, op.formatter.FormatMigrationStatus(m.Name, m.Target, fileops.StatusMissing, 0))
		return nil
	}

	content, err := op.opts.Files.ReadFile(ctx, m.Target)
	if err != nil {
		return errors.Errorf("reading target of %s: %w", m.Name, err)
	}

	pending := m.Pending(content)
	fileStatus := fileops.StatusApplied
	if pending > 0 {
		fileStatus = fileops.StatusPending
	}

	op.opts.Files.TrackFile(ctx, m.Target, fileops.FileInfo{
		Status:  fileStatus,
		Size:    int64(len(content)),
		Pending: pending,
	})
	fmt.Fprintln(op.out, op.formatter.FormatMigrationStatus(m.Name, m.Target, fileStatus, pending))
	return nil
}
