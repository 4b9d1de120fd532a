// Package domain defines the data model shared by the sync pipeline.
package domain

import "time"

// SleepStage classifies a sleep interval reported by the source.
type SleepStage int

const (
	StageDeep SleepStage = iota
	StageLight
	StageREM
	StageAwake
	// StageUnknown marks a stage value the source sent that we do not
	// recognise. The raw value is preserved on the segment.
	StageUnknown
)

// StageFromLevel maps the source's numeric activityLevel to a SleepStage.
// Values outside the known range map to StageUnknown.
func StageFromLevel(level int) SleepStage {
	switch level {
	case 0:
		return StageDeep
	case 1:
		return StageLight
	case 2:
		return StageREM
	case 3:
		return StageAwake
	default:
		return StageUnknown
	}
}

// StageFromName maps a textual stage name to a SleepStage. Unrecognised
// names map to StageUnknown.
func StageFromName(name string) SleepStage {
	switch name {
	case "DEEP":
		return StageDeep
	case "LIGHT":
		return StageLight
	case "REM":
		return StageREM
	case "AWAKE":
		return StageAwake
	default:
		return StageUnknown
	}
}

// String returns the canonical upper-case stage name.
func (s SleepStage) String() string {
	switch s {
	case StageDeep:
		return "DEEP"
	case StageLight:
		return "LIGHT"
	case StageREM:
		return "REM"
	case StageAwake:
		return "AWAKE"
	default:
		return "UNKNOWN"
	}
}

// Category tags an event with the kind of telemetry it came from.
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
)

// RawSleepSegment is one sleep-stage interval as reported by the source for
// a single day. RawStage keeps the original source value so unrecognised
// stages survive the enum mapping.
type RawSleepSegment struct {
	Stage    SleepStage
	RawStage string
	Start    time.Time
	End      time.Time
}

// RawActivity is one activity session as reported by the source. Type is a
// free-form string ("walking", "cycling", ...).
type RawActivity struct {
	Type     string
	Start    time.Time
	Duration time.Duration
}

// Event is the normalized record written to the event store. Events are
// immutable after creation; a later sync replaces them wholesale.
type Event struct {
	Timestamp time.Time
	Duration  time.Duration
	Title     string
	Category  Category
	// Data carries extra payload fields beyond title and category, such as
	// the raw activity type.
	Data map[string]any
}
