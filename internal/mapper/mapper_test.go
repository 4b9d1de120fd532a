package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
)

func TestSleepEventScenario(t *testing.T) {
	seg := domain.RawSleepSegment{
		Stage: domain.StageDeep,
		Start: time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC),
	}

	event := SleepEvent(seg)
	require.Equal(t, "Sleep: DEEP", event.Title)
	require.Equal(t, domain.CategorySleep, event.Category)
	require.Equal(t, seg.Start, event.Timestamp)
	require.Equal(t, 3*time.Hour, event.Duration)
}

func TestActivityEventScenario(t *testing.T) {
	act := domain.RawActivity{
		Type:     "cycling",
		Start:    time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC),
		Duration: 30 * time.Minute,
	}

	event := ActivityEvent(act)
	require.Equal(t, "Activity: Cycling", event.Title)
	require.Equal(t, domain.CategoryActivity, event.Category)
	require.Equal(t, act.Start, event.Timestamp)
	require.Equal(t, 30*time.Minute, event.Duration)
	require.Equal(t, "cycling", event.Data["type"])
	require.Equal(t, 30, event.Data["duration_minutes"])
}

func TestTitlesAreDeterministic(t *testing.T) {
	seg := domain.RawSleepSegment{
		Stage: domain.StageREM,
		Start: time.Now().UTC(),
		End:   time.Now().UTC().Add(time.Hour),
	}
	require.Equal(t, SleepEvent(seg).Title, SleepEvent(seg).Title)

	act := domain.RawActivity{Type: "trail_running", Start: time.Now().UTC(), Duration: time.Hour}
	require.Equal(t, ActivityEvent(act).Title, ActivityEvent(act).Title)
}

func TestUnknownStageFallsBack(t *testing.T) {
	seg := domain.RawSleepSegment{
		Stage:    domain.StageFromName("NAP"),
		RawStage: "NAP",
		Start:    time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 3, 14, 13, 20, 0, 0, time.UTC),
	}

	event := SleepEvent(seg)
	require.NotEmpty(t, event.Title)
	require.Equal(t, "Sleep: UNKNOWN", event.Title)
}

func TestNegativeDurationsClampToZero(t *testing.T) {
	seg := domain.RawSleepSegment{
		Stage: domain.StageLight,
		Start: time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC),
	}
	require.Equal(t, time.Duration(0), SleepEvent(seg).Duration)

	act := domain.RawActivity{Type: "walking", Start: time.Now(), Duration: -time.Minute}
	require.Equal(t, time.Duration(0), ActivityEvent(act).Duration)
}

func TestActivityLabel(t *testing.T) {
	assert.Equal(t, "Cycling", ActivityLabel("cycling"))
	assert.Equal(t, "Cycling", ActivityLabel("CYCLING"))
	assert.Equal(t, "Trail Running", ActivityLabel("trail_running"))
	assert.Equal(t, "Trail Running", ActivityLabel("trail running"))
	assert.Equal(t, "Activity", ActivityLabel(""))
	assert.Equal(t, "Activity", ActivityLabel("   "))
}

func TestMapAllIsOneToOne(t *testing.T) {
	segments := []domain.RawSleepSegment{
		{Stage: domain.StageDeep, Start: time.Now(), End: time.Now().Add(time.Hour)},
		{Stage: domain.StageLight, Start: time.Now(), End: time.Now().Add(time.Hour)},
	}
	activities := []domain.RawActivity{
		{Type: "walking", Start: time.Now(), Duration: 10 * time.Minute},
	}

	events := MapAll(segments, activities)
	require.Len(t, events, 3)
	require.Equal(t, domain.CategorySleep, events[0].Category)
	require.Equal(t, domain.CategorySleep, events[1].Category)
	require.Equal(t, domain.CategoryActivity, events[2].Category)
}
