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
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	// Define YAML schema
	type yamlRule struct {
		Name           string `yaml:"name,omitempty"`
		Old            string `yaml:"old"`
		New            string `yaml:"new"`
		Regex          bool   `yaml:"regex,omitempty"`
		FileFilterGlob string `yaml:"file_filter_glob,omitempty"`
	}
	type yamlMigration struct {
		Name        string     `yaml:"name"`
		Description string     `yaml:"description,omitempty"`
		Target      string     `yaml:"target"`
		Rules       []yamlRule `yaml:"rules"`
	}
	type yamlConfig struct {
		BaseDir    string          `yaml:"base_dir,omitempty"`
		Strict     bool            `yaml:"strict,omitempty"`
		Async      bool            `yaml:"async,omitempty"`
		Migrations []yamlMigration `yaml:"migrations,omitempty"`
	}

	// Parse YAML
	var yamlCfg yamlConfig
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&yamlCfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	// Convert to model
	cfg := &Config{
		BaseDir: yamlCfg.BaseDir,
		Strict:  yamlCfg.Strict,
		Async:   yamlCfg.Async,
	}
	for _, m := range yamlCfg.Migrations {
		spec := MigrationSpec{
			Name:        m.Name,
			Description: m.Description,
			Target:      m.Target,
		}
		for _, r := range m.Rules {
			spec.Rules = append(spec.Rules, Rule{
				Name:           r.Name,
				Old:            r.Old,
				New:            r.New,
				Regex:          r.Regex,
				FileFilterGlob: r.FileFilterGlob,
			})
		}
		cfg.Migrations = append(cfg.Migrations, spec)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
