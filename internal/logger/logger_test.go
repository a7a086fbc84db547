package logger

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(Params{Output: &buf})

	Debug("hidden", "k", 1)
	assert.Empty(t, buf.String())

	Info("analysis rejected", "kind", "duplicate node id")
	assert.Contains(t, buf.String(), "analysis rejected")
	assert.Contains(t, buf.String(), "kind=")

	buf.Reset()
	Init(Params{Debug: true, Output: &buf})
	Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	Warn("size limit disabled", "max_nodes", 0)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "max_nodes=0")

	buf.Reset()
	Error("shutdown failed", "err", errors.New("boom"))
	assert.Contains(t, buf.String(), "ERRO")
	assert.Contains(t, buf.String(), "err=boom")
}

// TestFatalExits re-runs itself in a child process because Fatal calls os.Exit.
func TestFatalExits(t *testing.T) {
	if os.Getenv("PIPECHECK_LOGGER_FATAL") == "1" {
		Init(Params{Output: os.Stderr})
		Fatal("command failed", "err", "bad flag")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalExits$")
	cmd.Env = append(os.Environ(), "PIPECHECK_LOGGER_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "command failed")
	assert.Contains(t, stderr.String(), `err="bad flag"`)
}

func TestUninitializedIsSilent(t *testing.T) {
	singleton = nil
	assert.NotPanics(t, func() {
		Debug("x")
		Info("x")
		Warn("x")
		Error("x")
	})
}
