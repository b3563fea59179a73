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

// Package migration defines named, ordered rewrite sequences and the
// registry the CLI resolves them from.
package migration

import (
	"sort"
	"sync"

	"github.com/walteh/fixup/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 📚 Migration is a named, ordered rewrite sequence bound to one target file.
type Migration struct {
	Name            string                   // Unique migration name
	Description     string                   // Human-readable summary
	Target          string                   // Relative path of the file this migration rewrites
	Transformations []rewrite.Transformation // Applied in order over the evolving text
}

// 🔍 Validate checks that the migration is well formed
func (m *Migration) Validate() error {
	if m.Name == "" {
		return errors.Errorf("migration name is required")
	}
	if m.Target == "" {
		return errors.Errorf("migration %q: target is required", m.Name)
	}
	if len(m.Transformations) == 0 {
		return errors.Errorf("migration %q: at least one transformation is required", m.Name)
	}
	return nil
}

// Pending reports how many transformation patterns still match content.
// Zero means the migration has nothing left to do on this file.
func (m *Migration) Pending(content []byte) int {
	pending := 0
	for _, t := range m.Transformations {
		if t.Pattern != nil && t.Pattern.Match(content) {
			pending++
		}
	}
	return pending
}

var (
	mu sync.RWMutex

	// 🗺️ registry holds all registered migrations by name
	registry = map[string]*Migration{}
)

// 📝 Register registers a migration. Built-in migrations register themselves
// from init; config-defined ones are added at load time.
func Register(m *Migration) error {
	if err := m.Validate(); err != nil {
		return errors.Errorf("registering migration: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[m.Name]; ok {
		return errors.Errorf("migration %q is already registered", m.Name)
	}
	registry[m.Name] = m
	return nil
}

// 🎯 Get returns a registered migration by name.
func Get(name string) (*Migration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := registry[name]
	return m, ok
}

// Names returns the names of all registered migrations, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps migration names to migrations. An empty argument list selects
// every registered migration.
func Resolve(names []string) ([]*Migration, error) {
	if len(names) == 0 {
		names = Names()
	}
	migrations := make([]*Migration, 0, len(names))
	for _, name := range names {
		m, ok := Get(name)
		if !ok {
			return nil, errors.Errorf("unknown migration %q", name)
		}
		migrations = append(migrations, m)
	}
	return migrations, nil
}
