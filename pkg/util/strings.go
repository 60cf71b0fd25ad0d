package util

import "strings"

// RemoveDuplicateStrings keeps the first occurrence of every non-empty string,
// preserving input order. Anything in ignoreList is dropped.
func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// NormaliseStationCode upper-cases and trims a station code so "frpar " and
// "FRPAR" address the same station.
func NormaliseStationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
