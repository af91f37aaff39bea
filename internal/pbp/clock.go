package pbp

import (
	"regexp"
	"strconv"
	"strings"
)

var clockRe = regexp.MustCompile(`^(\d+):(\d{1,2})(?:\.\d+)?$`)

// ParseClockMinutes converts an "M:SS" game clock into minutes remaining.
// Anything else, including sub-minute "45.3" readings, is reported as not ok so
// callers exclude the play from time windows instead of treating it as 0:00.
func ParseClockMinutes(clock string) (float64, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(m[2])
	if err != nil || secs >= 60 {
		return 0, false
	}
	return float64(mins) + float64(secs)/60, true
}

// inWindow reports whether clock is strictly under limit minutes.
func inWindow(clock string, limit float64) bool {
	m, ok := ParseClockMinutes(clock)
	return ok && m < limit
}
