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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Name           string `hcl:"name,optional"`
		Old            string `hcl:"old"`
		New            string `hcl:"new"`
		Regex          bool   `hcl:"regex,optional"`
		FileFilterGlob string `hcl:"file_filter_glob,optional"`
	}
	type hclMigration struct {
		Name        string    `hcl:"name,label"`
		Description string    `hcl:"description,optional"`
		Target      string    `hcl:"target"`
		Rules       []hclRule `hcl:"rule,block"`
	}
	type hclConfig struct {
		BaseDir    string         `hcl:"base_dir,optional"`
		Strict     bool           `hcl:"strict,optional"`
		Async      bool           `hcl:"async,optional"`
		Migrations []hclMigration `hcl:"migration,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		BaseDir: hclCfg.BaseDir,
		Strict:  hclCfg.Strict,
		Async:   hclCfg.Async,
	}
	for _, m := range hclCfg.Migrations {
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
