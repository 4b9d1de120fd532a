// Package mapper converts raw source records into normalized events.
//
// Mapping is pure and deterministic: the same raw record always produces the
// same event, which is what makes the replace-window reconciliation in the
// sync package converge across runs.
package mapper

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
)

const (
	sleepTitlePrefix    = "Sleep: "
	activityTitlePrefix = "Activity: "
	fallbackActivity    = "Activity"
)

// SleepEvent maps one sleep-stage segment to an event. Unrecognised stages
// produce the UNKNOWN fallback title rather than an error, so new upstream
// stage values never abort a run.
func SleepEvent(seg domain.RawSleepSegment) domain.Event {
	duration := seg.End.Sub(seg.Start)
	if duration < 0 {
		duration = 0
	}
	return domain.Event{
		Timestamp: seg.Start,
		Duration:  duration,
		Title:     sleepTitlePrefix + seg.Stage.String(),
		Category:  domain.CategorySleep,
		Data: map[string]any{
			"stage": seg.Stage.String(),
		},
	}
}

// ActivityEvent maps one activity session to an event. The activity type is
// title-cased to a stable human label; types never seen before still map
// cleanly because the rule is generic rather than a lookup table.
func ActivityEvent(act domain.RawActivity) domain.Event {
	duration := act.Duration
	if duration < 0 {
		duration = 0
	}
	return domain.Event{
		Timestamp: act.Start,
		Duration:  duration,
		Title:     activityTitlePrefix + ActivityLabel(act.Type),
		Category:  domain.CategoryActivity,
		Data: map[string]any{
			"type":             act.Type,
			"duration_minutes": int(duration / time.Minute),
		},
	}
}

// MapAll maps every raw record 1:1 to an event, sleep first.
func MapAll(segments []domain.RawSleepSegment, activities []domain.RawActivity) []domain.Event {
	events := make([]domain.Event, 0, len(segments)+len(activities))
	for _, seg := range segments {
		events = append(events, SleepEvent(seg))
	}
	for _, act := range activities {
		events = append(events, ActivityEvent(act))
	}
	return events
}

// ActivityLabel normalizes a free-form activity type into a display label:
// "cycling" -> "Cycling", "trail running" -> "Trail Running". Empty input
// falls back to a generic label.
func ActivityLabel(activityType string) string {
	trimmed := strings.TrimSpace(activityType)
	if trimmed == "" {
		return fallbackActivity
	}
	trimmed = strings.ReplaceAll(trimmed, "_", " ")
	return cases.Title(language.Und).String(strings.ToLower(trimmed))
}
