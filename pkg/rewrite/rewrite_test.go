package rewrite

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Apply(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		transforms   []Transformation
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			path:    "src/app.tsx",
			content: "customerId: 42",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "customerFirestoreId"),
			},
			want:         "customerFirestoreId: 42",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "global_replacement",
			path:    "src/app.tsx",
			content: "customerId customerId",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "ref"),
			},
			want:         "ref ref",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "ordered_sequence",
			path:    "src/app.tsx",
			content: "alpha beta",
			transforms: []Transformation{
				NewLiteral("first", "alpha", "beta"),
				NewLiteral("second", "beta", "gamma"),
			},
			want:         "gamma gamma",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "no_match_is_silent",
			path:    "src/app.tsx",
			content: "hello world",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "customerFirestoreId"),
			},
			want:         "hello world",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "file_filter_skips_other_paths",
			path:    "src/app.go",
			content: "customerId",
			transforms: []Transformation{
				{
					Name:           "rename",
					Pattern:        regexp.MustCompile("customerId"),
					Replacement:    "customerFirestoreId",
					FileFilterGlob: "**/*.tsx",
				},
			},
			want:         "customerId",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "replacement_is_literal",
			path:    "src/app.tsx",
			content: "value",
			transforms: []Transformation{
				NewLiteral("template", "value", "${project.archived ? 'a' : 'b'}"),
			},
			want:         "${project.archived ? 'a' : 'b'}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "empty_transforms",
			path:         "src/app.tsx",
			content:      "hello",
			transforms:   []Transformation{},
			want:         "hello",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "multiline_fragment",
			path:    "src/app.tsx",
			content: "a\nfoo\nbar\nz",
			transforms: []Transformation{
				NewLiteral("block", "foo\nbar", "baz\nqux"),
			},
			want:         "a\nbaz\nqux\nz",
			wantCount:    1,
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(false)
			result, err := engine.Apply(context.Background(), tt.path, []byte(tt.content), tt.transforms)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestEngine_Apply_Strict(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		transforms []Transformation
		wantError  string
	}{
		{
			name:    "exactly_one_match_succeeds",
			content: "customerId: 42",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "customerFirestoreId"),
			},
		},
		{
			name:    "zero_matches_fails",
			content: "hello world",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "customerFirestoreId"),
			},
			wantError: `transformation "rename": pattern not found`,
		},
		{
			name:    "multiple_matches_fails",
			content: "customerId customerId",
			transforms: []Transformation{
				NewLiteral("rename", "customerId", "ref"),
			},
			wantError: "matched 2 times",
		},
		{
			name:    "error_names_the_failing_transformation",
			content: "alpha",
			transforms: []Transformation{
				NewLiteral("first", "alpha", "beta"),
				NewLiteral("second", "missing", "gamma"),
			},
			wantError: `transformation "second"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(true)
			result, err := engine.Apply(context.Background(), "src/app.tsx", []byte(tt.content), tt.transforms)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
		})
	}
}

func TestEngine_ValidateTransformations(t *testing.T) {
	tests := []struct {
		name       string
		transforms []Transformation
		wantError  string
	}{
		{
			name: "valid",
			transforms: []Transformation{
				NewLiteral("rename", "a", "b"),
			},
		},
		{
			name: "missing_name",
			transforms: []Transformation{
				{Pattern: regexp.MustCompile("a")},
			},
			wantError: "name is required",
		},
		{
			name: "missing_pattern",
			transforms: []Transformation{
				{Name: "rename"},
			},
			wantError: "pattern is required",
		},
		{
			name:       "empty",
			transforms: []Transformation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEngine(false).ValidateTransformations(tt.transforms)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestNewRegexp(t *testing.T) {
	t.Run("valid_pattern", func(t *testing.T) {
		tr, err := NewRegexp("rename", `customerId: \d+`, "customerFirestoreId: 'x'")
		require.NoError(t, err)
		assert.True(t, tr.Pattern.MatchString("customerId: 42"))
	})

	t.Run("invalid_pattern", func(t *testing.T) {
		_, err := NewRegexp("broken", `(`, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `compiling pattern for "broken"`)
	})
}
