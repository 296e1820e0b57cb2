package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/lifeloop/pkg/scenario"
)

func TestResolve_ExactMatch(t *testing.T) {
	r := New(scenario.Default())
	want, _ := scenario.Default().Get("I want to retire at 40")

	got := r.Resolve("I want to retire at 40")
	require.Equal(t, want.Response, got)
	require.True(t, strings.HasPrefix(got, "[SDCC Protocol Engaged]\n"))
}

func TestResolve_NearMissFallsBack(t *testing.T) {
	r := New(scenario.Default())
	canned := r.Resolve("I want to retire at 40")

	cases := []string{
		"i want to retire at 40",
		"I want to retire at 40 ",
		" I want to retire at 40",
		"I want to retire at 40.",
		"I  want to retire at 40",
	}
	for _, q := range cases {
		t.Run(q, func(t *testing.T) {
			out, hit := r.Lookup(q)
			require.False(t, hit)
			require.NotEqual(t, canned, out)
			require.Equal(t, Fallback(q), out)
		})
	}
}

func TestResolve_FallbackEmbedsQuery(t *testing.T) {
	r := New(scenario.Default())
	for _, q := range []string{"random unseen query", `quotes "inside"`, "multi\nline", "日本語", "%s %d"} {
		out := r.Resolve(q)
		require.Contains(t, out, q)
		require.Contains(t, out, "Simulation complete.")
		require.Contains(t, out, "Multiple timeline branches detected.")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := New(scenario.Default())
	for _, q := range append(scenario.Default().Queries(), "anything else") {
		require.Equal(t, r.Resolve(q), r.Resolve(q))
	}
}

func TestResolve_NilCatalog(t *testing.T) {
	r := New(nil)
	out, hit := r.Lookup("What if I lose my job?")
	require.False(t, hit)
	require.Contains(t, out, "What if I lose my job?")
}
