package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// DurationPlaceholder is rendered for durations that cannot be displayed
const DurationPlaceholder = "—"

var ErrInvalidDuration = errors.New("invalid duration, expected HHhMM")

// ParseTimeToMinutes converts an HH:MM clock time into minutes since midnight.
// Empty or malformed input yields 0, which is indistinguishable from midnight.
func ParseTimeToMinutes(clock string) int {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0
	}

	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}

// MinutesBetween returns the minutes from start to end. An end earlier than
// start is taken to be on the following day, so at most one midnight is crossed.
func MinutesBetween(start string, end string) int {
	startMinutes := ParseTimeToMinutes(start)
	endMinutes := ParseTimeToMinutes(end)

	if endMinutes < startMinutes {
		endMinutes += MinutesPerDay
	}

	return endMinutes - startMinutes
}

// FormatDuration renders a minute count as HHhMM
func FormatDuration(minutes int) string {
	if minutes < 0 {
		return DurationPlaceholder
	}

	return fmt.Sprintf("%02dh%02d", minutes/60, minutes%60)
}

// FormatDurationValue is FormatDuration for computed values that may be infinite
func FormatDurationValue(minutes float64) string {
	if math.IsInf(minutes, 0) || math.IsNaN(minutes) || minutes < 0 {
		return DurationPlaceholder
	}

	return FormatDuration(int(minutes))
}

// ParseDuration reads back a value produced by FormatDuration
func ParseDuration(formatted string) (int, error) {
	hoursPart, minutesPart, found := strings.Cut(formatted, "h")
	if !found {
		return 0, ErrInvalidDuration
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, formatted)
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil || minutes >= 60 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, formatted)
	}

	return hours*60 + minutes, nil
}
