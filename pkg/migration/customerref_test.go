package migration

import (
	"context"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/fixup/pkg/rewrite"
)

// unescape recovers the plain source fragment from an escaped pattern.
var unescape = regexp.MustCompile(`\\(.)`)

func plain(pattern string) string {
	return unescape.ReplaceAllString(pattern, "$1")
}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	content, err := os.ReadFile("testdata/ProjectManagerModal.tsx")
	require.NoError(t, err)
	return content
}

func TestCustomerFirestoreID_AppliesAllFragments(t *testing.T) {
	m := NewCustomerFirestoreID()
	fixture := loadFixture(t)

	result, err := rewrite.ReplaceAll(context.Background(), m.Target, fixture, m.Transformations)
	require.NoError(t, err)
	require.True(t, result.WasModified)
	assert.Equal(t, 6, result.ReplacementCount)

	out := string(result.ModifiedContent)

	oldFragments := []string{oldStateDecl, oldResetForm, oldEditHandler, oldSubmitHandler, oldCustomerSelect, oldProjectItem}
	for _, pattern := range oldFragments {
		assert.NotContains(t, out, plain(pattern))
	}

	newFragments := []string{newStateDecl, newResetForm, newEditHandler, newSubmitHandler, newCustomerSelect, newProjectItem}
	for _, fragment := range newFragments {
		assert.Contains(t, out, fragment)
	}

	// The field rename lands in the state declaration context and nowhere else
	assert.Contains(t, out, "customerFirestoreId: undefined as string | undefined")
	assert.NotContains(t, out, "customerId: undefined as number | undefined")
}

func TestCustomerFirestoreID_SecondRunIsNoOp(t *testing.T) {
	m := NewCustomerFirestoreID()
	fixture := loadFixture(t)

	first, err := rewrite.ReplaceAll(context.Background(), m.Target, fixture, m.Transformations)
	require.NoError(t, err)
	require.True(t, first.WasModified)

	second, err := rewrite.ReplaceAll(context.Background(), m.Target, first.ModifiedContent, m.Transformations)
	require.NoError(t, err)
	assert.False(t, second.WasModified)
	assert.Equal(t, 0, second.ReplacementCount)
	assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
}

func TestCustomerFirestoreID_PartiallyMigratedFile(t *testing.T) {
	m := NewCustomerFirestoreID()
	fixture := string(loadFixture(t))

	// Simulate a file whose dropdown was already hand-edited away
	partial := strings.Replace(fixture, plain(oldCustomerSelect), "{/* dropdown removed */}", 1)
	require.NotEqual(t, fixture, partial)

	result, err := rewrite.ReplaceAll(context.Background(), m.Target, []byte(partial), m.Transformations)
	require.NoError(t, err)
	require.True(t, result.WasModified)
	assert.Equal(t, 5, result.ReplacementCount)

	out := string(result.ModifiedContent)
	assert.NotContains(t, out, newCustomerSelect)
	assert.Contains(t, out, "{/* dropdown removed */}")
	for _, fragment := range []string{newStateDecl, newResetForm, newEditHandler, newSubmitHandler, newProjectItem} {
		assert.Contains(t, out, fragment)
	}
}

func TestCustomerFirestoreID_StrictMode(t *testing.T) {
	m := NewCustomerFirestoreID()
	fixture := loadFixture(t)

	// Each fragment occurs exactly once by the time its transformation runs,
	// so strict mode passes over a pristine file.
	engine := rewrite.NewEngine(true)
	result, err := engine.Apply(context.Background(), m.Target, fixture, m.Transformations)
	require.NoError(t, err)
	require.True(t, result.WasModified)

	// A second strict run fails loudly instead of silently no-opping
	_, err = engine.Apply(context.Background(), m.Target, result.ModifiedContent, m.Transformations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern not found")
}

func TestCustomerFirestoreID_Pending(t *testing.T) {
	m := NewCustomerFirestoreID()
	fixture := loadFixture(t)

	assert.Equal(t, 6, m.Pending(fixture))

	result, err := rewrite.ReplaceAll(context.Background(), m.Target, fixture, m.Transformations)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Pending(result.ModifiedContent))
}

func TestCustomerFirestoreID_Registered(t *testing.T) {
	m, ok := Get(CustomerFirestoreID)
	require.True(t, ok)
	assert.Equal(t, ProjectManagerModalPath, m.Target)
	assert.Len(t, m.Transformations, 6)
}
