package config

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written in configuration as an ISO8601 duration
// ("PT15S", "PT90M"). Plain Go durations ("15s") are accepted too.
type Duration time.Duration

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func ParseDuration(value string) (Duration, error) {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(strings.ToUpper(value), "P") {
		isoDuration, err := iso8601.ParseISO8601(strings.ToUpper(value))
		if err != nil {
			return 0, fmt.Errorf("invalid ISO8601 duration %q: %w", value, err)
		}

		return Duration(isoDuration.Shift(durationReference).Sub(durationReference)), nil
	}

	goDuration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}

	return Duration(goDuration), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	parsed, err := ParseDuration(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
