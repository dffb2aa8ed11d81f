package utils

import "time"

// NowRFC3339 returns the current UTC time formatted as RFC3339.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 timestamp. Zero time on failure.
func ParseRFC3339(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
