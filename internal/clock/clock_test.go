package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManual_AdvanceFiresInOrder(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var fired []string

	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, fired)
	require.Equal(t, 1, c.Pending())

	c.Advance(10 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Equal(t, time.Unix(0, 0).Add(30*time.Millisecond), c.Now())
}

func TestManual_ChainedTimersFireWithinOneAdvance(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	n := 0
	var tick func()
	tick = func() {
		n++
		if n < 5 {
			c.AfterFunc(time.Millisecond, tick)
		}
	}
	c.AfterFunc(time.Millisecond, tick)

	c.Advance(time.Second)
	require.Equal(t, 5, n)
	require.Zero(t, c.Pending())
}

func TestManual_Stop(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	c.Advance(time.Second)
	require.False(t, fired)
}
