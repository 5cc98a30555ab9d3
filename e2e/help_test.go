//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through the PTY since it exits quickly
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	t.Logf("Help output length: %d chars", len(output))

	require.Greater(t, len(output), 50, "Help should produce substantial output")
	require.Contains(t, output, "USAGE")
	require.Contains(t, output, "--api-url", "Help should list the API flag")
	require.Contains(t, output, "print", "Help should list the print command")
	require.Contains(t, output, "config", "Help should list the config command")
}
