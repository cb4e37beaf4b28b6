package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/fab/internal/adapters/shell"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports/mocks"
)

// A tool that exists only on the toolchain PATH must resolve, proving
// the executor searches the merged environment rather than the parent
// process's PATH.
func TestExecutor_Execute_ToolchainPathResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)

	binDir := t.TempDir()
	toolPath := filepath.Join(binDir, "fab-test-tool")
	script := "#!/bin/sh\necho from-toolchain\n"
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(toolPath, []byte(script), 0o700))

	task := &domain.Task{
		Name:       domain.NewInternedString("hermetic"),
		Commands:   [][]string{{"fab-test-tool"}},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var out bytes.Buffer
	toolchainEnv := []string{"PATH=" + binDir}
	err := executor.Execute(context.Background(), task, toolchainEnv, &out)
	require.NoError(t, err)
	assert.Equal(t, "from-toolchain\n", out.String())
}

// The toolchain PATH is prepended to the system PATH, so standard tools
// stay reachable when the toolchain supplies its own bin directory.
func TestExecutor_Execute_SystemPathStillSearched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)

	task := &domain.Task{
		Name:       domain.NewInternedString("fallthrough"),
		Commands:   [][]string{{"sh", "-c", "echo still-works"}},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var out bytes.Buffer
	toolchainEnv := []string{"PATH=" + t.TempDir()}
	err := executor.Execute(context.Background(), task, toolchainEnv, &out)
	require.NoError(t, err)
	assert.Equal(t, "still-works\n", out.String())
}
