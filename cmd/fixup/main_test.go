package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/fixup/pkg/migration"
)

const fixturePath = "../../pkg/migration/testdata/ProjectManagerModal.tsx"

func setupProject(t *testing.T) string {
	t.Helper()
	fixture, err := os.ReadFile(fixturePath)
	require.NoError(t, err)

	dir := t.TempDir()
	target := filepath.Join(dir, migration.ProjectManagerModalPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, fixture, 0644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApplyCommand(t *testing.T) {
	dir := setupProject(t)
	target := filepath.Join(dir, migration.ProjectManagerModalPath)

	out, err := runCommand(t, "apply", migration.CustomerFirestoreID, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "File updated successfully!")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "customerFirestoreId: undefined as string | undefined")
	assert.NotContains(t, string(content), "customerId: undefined as number | undefined")

	// A second run is a no-op and leaves the file byte-identical
	first := append([]byte(nil), content...)
	_, err = runCommand(t, "apply", migration.CustomerFirestoreID, "--dir", dir)
	require.NoError(t, err)

	second, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApplyCommand_MissingTarget(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, "apply", migration.CustomerFirestoreID, "--dir", dir)
	require.Error(t, err)

	// The failed run must not create the file
	_, statErr := os.Stat(filepath.Join(dir, migration.ProjectManagerModalPath))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyCommand_UnknownMigration(t *testing.T) {
	dir := setupProject(t)

	_, err := runCommand(t, "apply", "no-such-migration", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration")
}

func TestStatusCommand(t *testing.T) {
	dir := setupProject(t)

	out, err := runCommand(t, "status", migration.CustomerFirestoreID, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "pending")

	_, err = runCommand(t, "apply", migration.CustomerFirestoreID, "--dir", dir)
	require.NoError(t, err)

	out, err = runCommand(t, "status", migration.CustomerFirestoreID, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "applied")
}

func TestListCommand(t *testing.T) {
	out, err := runCommand(t, "list", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, migration.CustomerFirestoreID)
}
