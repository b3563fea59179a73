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

package rewrite

import (
	"context"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Transformation is a single pattern-to-fragment rewrite. The replacement
// is always inserted literally, with no capture group expansion, because the
// fragments we rewrite routinely contain `${...}` template text.
type Transformation struct {
	Name           string         // Identifier used in errors and logs
	Pattern        *regexp.Regexp // Pattern matching the fragment to replace
	Replacement    string         // Literal fragment that supersedes the match
	FileFilterGlob string         // Optional glob restricting which paths this applies to
}

// NewLiteral builds a transformation that matches oldText verbatim.
func NewLiteral(name, oldText, newText string) Transformation {
	return Transformation{
		Name:        name,
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(oldText)),
		Replacement: newText,
	}
}

// NewRegexp builds a transformation from a pattern source string.
func NewRegexp(name, pattern, replacement string) (Transformation, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Transformation{}, errors.Errorf("compiling pattern for %q: %w", name, err)
	}
	return Transformation{Name: name, Pattern: re, Replacement: replacement}, nil
}

// 📊 MatchCount records how often one transformation's pattern matched.
type MatchCount struct {
	Name  string
	Count int
}

// 📦 Result contains the outcome of applying a transformation sequence
type Result struct {
	// OriginalContent is the content before any transformation
	OriginalContent []byte

	// ModifiedContent is the content after all transformations
	ModifiedContent []byte

	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// Matches records the per-transformation match counts, in order
	Matches []MatchCount
}

// 🎯 Engine applies an ordered transformation sequence to file content.
// Each transformation's input is the output of the previous one.
type Engine struct {
	strict bool
}

// 🏭 NewEngine creates a new engine. In strict mode a transformation whose
// pattern matches zero times, or more than once, fails the whole run; in the
// default lenient mode an unmatched pattern is a silent no-op.
func NewEngine(strict bool) *Engine {
	return &Engine{strict: strict}
}

// ReplaceAll is a lenient-mode convenience for callers without an Engine.
func ReplaceAll(ctx context.Context, path string, content []byte, transforms []Transformation) (*Result, error) {
	return NewEngine(false).Apply(ctx, path, content, transforms)
}

// Apply runs the transformations in order against content. path is only used
// to evaluate per-transformation file filter globs and for logging.
func (e *Engine) Apply(ctx context.Context, path string, content []byte, transforms []Transformation) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, t := range transforms {
		if t.Pattern == nil {
			return nil, errors.Errorf("transformation %q: pattern is required", t.Name)
		}

		// Honor the file filter, if any
		if t.FileFilterGlob != "" {
			matched, err := doublestar.Match(t.FileFilterGlob, path)
			if err != nil {
				return nil, errors.Errorf("transformation %q: matching glob %q: %w", t.Name, t.FileFilterGlob, err)
			}
			if !matched {
				logger.Debug().Str("transformation", t.Name).Str("path", path).Msg("file filter did not match, skipping")
				continue
			}
		}

		count := len(t.Pattern.FindAllIndex(current, -1))
		logger.Debug().Str("transformation", t.Name).Int("matches", count).Msg("applying transformation")

		if e.strict {
			if count == 0 {
				return nil, errors.Errorf("transformation %q: pattern not found in %s", t.Name, path)
			}
			if count > 1 {
				return nil, errors.Errorf("transformation %q: pattern matched %d times in %s, expected exactly one", t.Name, count, path)
			}
		}

		if count > 0 {
			current = t.Pattern.ReplaceAllLiteral(current, []byte(t.Replacement))
			result.WasModified = true
			result.ReplacementCount += count
		}

		result.Matches = append(result.Matches, MatchCount{Name: t.Name, Count: count})
	}

	result.ModifiedContent = current
	return result, nil
}

// ValidateTransformations checks that all transformations are well formed.
func (e *Engine) ValidateTransformations(transforms []Transformation) error {
	for i, t := range transforms {
		if t.Name == "" {
			return errors.Errorf("transformation %d: name is required", i)
		}
		if t.Pattern == nil {
			return errors.Errorf("transformation %d (%s): pattern is required", i, t.Name)
		}
	}
	return nil
}
