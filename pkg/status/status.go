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

package status

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 FileChangeType represents the kind of change made to a target file
type FileChangeType int

const (
	FileRewritten FileChangeType = iota
	FileUnchanged
	FileSkipped
	FileError
)

// 🖼️ FileChange represents one migration outcome on a target file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 📢 UserLogger provides user-friendly feedback about migration runs
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file change with appropriate prefix and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	relPath := filepath.Base(change.Path)

	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileRewritten:
		action = "Rewrote"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileUnchanged:
		action = "Unchanged"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "👍"})
	case FileSkipped:
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}
	if change.Error != nil {
		msg += fmt.Sprintf(": %v", change.Error)
	}

	printer.Println(msg)
	u.log.Debug().
		Str("path", change.Path).
		Str("action", action).
		Msg("file change")
}

// 📣 LogMigrationStart announces a migration run
func (u *UserLogger) LogMigrationStart(name, target string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄"}).Printfln("Applying %s to %s", name, target)
	u.log.Debug().Str("migration", name).Str("target", target).Msg("starting migration")
}

// LogValidation reports a validation outcome to the user.
func (u *UserLogger) LogValidation(ok bool, msg string, err error) {
	if ok {
		pterm.Success.Println(msg)
		return
	}
	if err != nil {
		pterm.Error.Printfln("%s: %v", msg, err)
		return
	}
	pterm.Error.Println(msg)
}

// TODO(dr.methodical): 🔧 wire pterm.EnableDebugMessages to the --debug flag so FileSkipped lines show up
