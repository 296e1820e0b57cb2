package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})

	SetLevel("warn")
	L.Info("hidden")
	require.Zero(t, buf.Len())

	L.Warn("shown", "turn", 3)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["msg"])
	require.Equal(t, float64(3), rec["turn"])

	buf.Reset()
	SetLevel("DEBUG")
	L.Debug("debugging")
	require.Contains(t, buf.String(), "debugging")
}
