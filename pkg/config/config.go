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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fixup/pkg/migration"
	"github.com/walteh/fixup/pkg/rewrite"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule represents one pattern replacement in a migration
type Rule struct {
	Name           string // Identifier used in errors and logs
	Old            string // Fragment to replace (literal unless Regex is set)
	New            string // Fragment that supersedes it
	Regex          bool   // Whether Old is a regular expression
	FileFilterGlob string // Optional glob restricting which paths the rule applies to
}

// 📦 MigrationSpec represents a user-defined migration
type MigrationSpec struct {
	Name        string // Unique migration name
	Description string // Human-readable summary
	Target      string // Relative path of the file to rewrite
	Rules       []Rule // Applied in order
}

// 📚 Config represents the complete configuration
type Config struct {
	BaseDir    string          // Directory target paths are resolved against
	Strict     bool            // Fail when a pattern matches zero or multiple times
	Async      bool            // Apply independent migrations concurrently
	Migrations []MigrationSpec // User-defined migrations, in addition to built-ins
}

// Default returns the zero-configuration defaults: built-in migrations only,
// lenient matching, sequential execution, current directory as base.
func Default() *Config {
	return &Config{BaseDir: "."}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	cfg.BaseDir = filepath.Clean(cfg.BaseDir)

	seen := map[string]bool{}
	for i, m := range cfg.Migrations {
		if m.Name == "" {
			return errors.Errorf("migration %d: name is required", i)
		}
		if seen[m.Name] {
			return errors.Errorf("migration %q: duplicate name", m.Name)
		}
		seen[m.Name] = true
		if m.Target == "" {
			return errors.Errorf("migration %q: target is required", m.Name)
		}
		if len(m.Rules) == 0 {
			return errors.Errorf("migration %q: at least one rule is required", m.Name)
		}
		for j, r := range m.Rules {
			if r.Old == "" {
				return errors.Errorf("migration %q: rule %d: old is required", m.Name, j)
			}
		}
	}
	return nil
}

// Compile converts the user-defined migration specs into migrations.
func (cfg *Config) Compile(ctx context.Context) ([]*migration.Migration, error) {
	migrations := make([]*migration.Migration, 0, len(cfg.Migrations))
	for _, spec := range cfg.Migrations {
		transforms := make([]rewrite.Transformation, 0, len(spec.Rules))
		for i, r := range spec.Rules {
			name := r.Name
			if name == "" {
				name = fmt.Sprintf("rule-%d", i)
			}
			var t rewrite.Transformation
			if r.Regex {
				var err error
				t, err = rewrite.NewRegexp(name, r.Old, r.New)
				if err != nil {
					return nil, errors.Errorf("migration %q: %w", spec.Name, err)
				}
			} else {
				t = rewrite.NewLiteral(name, r.Old, r.New)
			}
			t.FileFilterGlob = r.FileFilterGlob
			transforms = append(transforms, t)
		}
		migrations = append(migrations, &migration.Migration{
			Name:            spec.Name,
			Description:     spec.Description,
			Target:          spec.Target,
			Transformations: transforms,
		})
	}
	return migrations, nil
}

// 📂 Load loads and parses a config file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading config file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("no parser available for config file %s", path)
	}

	cfg, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
