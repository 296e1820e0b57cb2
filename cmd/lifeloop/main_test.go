package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_BadConfigReturnsExitCode(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", t.TempDir()+"/missing.yaml")

	require.Equal(t, 1, run())
}

func TestRun_UnopenableLogFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LIFELOOP_LOG_FILE", t.TempDir()+"/no/such/dir/lifeloop.log")

	require.Equal(t, 1, run())
}
