package phrase

import (
	"fmt"
	"time"
)

const DefaultTimezone = 3

var monthNames = [12]string{
	"янв.", "февр.", "марта", "апр.", "мая", "июня",
	"июля", "авг.", "сент.", "окт.", "нояб.", "дек.",
}

const foreverLabel = "навсегда"

// FormatDate renders t as "2 янв. 2026, 15:04 GMT+3" in the given GMT offset.
func FormatDate(t time.Time, timezone int) string {
	local := t.In(time.FixedZone("", timezone*3600))

	return fmt.Sprintf("%d %s %d, %d:%02d %s",
		local.Day(), monthNames[local.Month()-1], local.Year(), local.Hour(), local.Minute(), timezoneLabel(timezone))
}

func timezoneLabel(timezone int) string {
	if timezone > 0 {
		return fmt.Sprintf("GMT+%d", timezone)
	}
	return fmt.Sprintf("GMT%d", timezone)
}

// MaxUnmuteUnix is 9999-12-31 23:59:59 UTC. Longer mutes are clamped to it.
const MaxUnmuteUnix int64 = 253402300799

// MuteUntil converts a duration in seconds to the absolute unmute time.
// ok is false for a permanent mute.
func MuteUntil(now time.Time, duration int64) (until time.Time, ok bool) {
	if duration < 0 {
		return time.Time{}, false
	}

	start := now.Unix()
	if duration > MaxUnmuteUnix-start {
		return time.Unix(MaxUnmuteUnix, 0), true
	}

	return time.Unix(start+duration, 0), true
}

// MuteTime is the {time} slot of the mute template.
func MuteTime(now time.Time, duration int64, timezone int) string {
	if until, ok := MuteUntil(now, duration); ok {
		return "до " + FormatDate(until, timezone)
	}
	return foreverLabel
}
