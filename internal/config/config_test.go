package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
console:
  think_min: 100ms
  think_max: 200ms
  completion_delay: 1s
  completion_turns: 2
reveal:
  system_rate: 5ms
  output_rate: 7ms
scenarios:
  - query: "Can I afford a dog?"
    response: "Pet budget simulation: feasible."
    module: Chaos Lab
  - query: "Should I quit?"
    response: "Regret probability: 51%"
log:
  level: debug
  file: ""
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()
	return tmp.Name()
}

// TestLoad_File verifies that Load unmarshals every section.
func TestLoad_File(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, sampleConfig))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 100*time.Millisecond, cfg.Console.ThinkMin)
	require.Equal(t, 200*time.Millisecond, cfg.Console.ThinkMax)
	require.Equal(t, time.Second, cfg.Console.CompletionDelay)
	require.Equal(t, 2, cfg.Console.CompletionTurns)
	require.Equal(t, 5*time.Millisecond, cfg.Reveal.SystemRate)
	require.Equal(t, 7*time.Millisecond, cfg.Reveal.OutputRate)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Empty(t, cfg.Log.File)

	cat := cfg.Catalog()
	require.Equal(t, []string{"Can I afford a dog?", "Should I quit?"}, cat.Queries())
	s, ok := cat.Get("Can I afford a dog?")
	require.True(t, ok)
	require.Equal(t, "Chaos Lab", s.Module)

	sc := cfg.Console.Session()
	require.Equal(t, cfg.Console.ThinkMax, sc.ThinkMax)
	require.Equal(t, 2, sc.CompletionTurns)
}

// TestLoad_Defaults verifies that a missing config.yaml falls back to defaults.
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, cfg.Console.ThinkMin)
	require.Equal(t, 2500*time.Millisecond, cfg.Console.ThinkMax)
	require.Equal(t, 2000*time.Millisecond, cfg.Console.CompletionDelay)
	require.Equal(t, 3, cfg.Console.CompletionTurns)
	require.Equal(t, 20*time.Millisecond, cfg.Reveal.SystemRate)
	require.Equal(t, 30*time.Millisecond, cfg.Reveal.OutputRate)
	require.Equal(t, 3, cfg.Catalog().Len())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LIFELOOP_CONSOLE_COMPLETION_TURNS", "5")
	t.Setenv("LIFELOOP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Console.CompletionTurns)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir()+"/nope.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidRange(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "console:\n  think_min: 3s\n  think_max: 1s\n"))

	_, err := Load()
	require.ErrorContains(t, err, "think range")
}

func TestValidate_EmptyScenarioQuery(t *testing.T) {
	cfg := Config{
		Console:   ConsoleConfig{ThinkMin: 1, ThinkMax: 2, CompletionTurns: 3},
		Scenarios: nil,
	}
	require.NoError(t, cfg.Validate())

	cfg.Scenarios = append(cfg.Scenarios, cfg.Catalog().List()[0])
	cfg.Scenarios[0].Query = "  "
	require.ErrorContains(t, cfg.Validate(), "scenarios[0]")
}
