package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayWindowIsHalfOpen(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	window := DayWindow(now)

	require.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), window.Start)
	require.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), window.End)

	require.True(t, window.Contains(window.Start))
	require.True(t, window.Contains(now))
	require.False(t, window.Contains(window.End))
	require.False(t, window.Contains(window.Start.Add(-time.Nanosecond)))
}

func TestDayWindowKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	window := DayWindow(time.Date(2025, 3, 14, 23, 30, 0, 0, loc))
	require.Equal(t, loc, window.Start.Location())
	require.Equal(t, 24*time.Hour, window.End.Sub(window.Start))
}

func TestWidenTo(t *testing.T) {
	window := DayWindow(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC))

	earlier := time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC)
	widened := window.WidenTo(earlier)
	require.Equal(t, earlier, widened.Start)
	require.Equal(t, window.End, widened.End)

	// Timestamps inside the window leave it untouched.
	inside := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	require.Equal(t, widened, widened.WidenTo(inside))
}
