package status

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/walteh/fixup/pkg/fileops"
)

// FileFormatter defines how migration status lines should be formatted
type FileFormatter interface {
	// FormatMigrationStatus formats one migration's status line
	FormatMigrationStatus(name, target string, status fileops.FileStatus, pending int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatMigrationStatus formats a migration status line with colors
func (f *DefaultFileFormatter) FormatMigrationStatus(name, target string, status fileops.FileStatus, pending int) string {
	var statusText string
	switch status {
	case fileops.StatusPending:
		statusText = color.New(color.FgYellow).Sprintf("pending (%d fragments)", pending)
	case fileops.StatusApplied:
		statusText = color.New(color.FgGreen).Sprint("applied")
	case fileops.StatusRewritten:
		statusText = color.New(color.FgBlue).Sprint("rewritten")
	case fileops.StatusMissing:
		statusText = color.New(color.FgRed).Sprint("missing")
	default:
		statusText = color.New(color.FgWhite).Sprint("unknown")
	}
	return fmt.Sprintf("%-30s %-45s %s", name, target, statusText)
}

// FormatError formats an error message
func (f *DefaultFileFormatter) FormatError(err error) string {
	return color.New(color.FgRed).Sprintf("❌ %v", err)
}
