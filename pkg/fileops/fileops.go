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

package fileops

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the migration state of a target file
type FileStatus int

const (
	StatusUnknown FileStatus = iota
	StatusPending            // Original fragments still present, migration has work to do
	StatusApplied            // No original fragments remain
	StatusRewritten          // File was rewritten during this run
	StatusMissing            // Target file does not exist
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApplied:
		return "applied"
	case StatusRewritten:
		return "rewritten"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains migration metadata about a target file
type FileInfo struct {
	Path         string     // Relative path to the file
	Status       FileStatus // Current status
	Size         int64      // File size in bytes
	Pending      int        // Number of transformations that still match
	Replacements int        // Number of replacements made during this run
	Error        error      // Any error associated with this file
}

// 💾 Manager handles all file system operations for migration targets,
// rooted at a base directory.
type Manager struct {
	baseDir string

	mu    sync.RWMutex
	files map[string]FileInfo
}

// 🏭 NewManager creates a new manager rooted at baseDir
func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir: baseDir,
		files:   make(map[string]FileInfo),
	}
}

// BaseDir returns the directory all paths are resolved against.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// ReadFile reads the entire content of a target file.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// FileExists checks whether a target file exists.
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("checking file: %w", err)
	}
	return true, nil
}

// WriteFileAtomic writes content to a temp file and renames it over the
// target, so the original is never left half-written.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("writing file atomically")

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// TrackFile records status for a target file.
func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info.Path = path
	m.files[path] = info
}

// GetFileInfo returns status for a tracked file.
func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns all tracked files sorted by path.
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos
}
