package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCountdown parses a DD:HH:MM:SS display string into a duration.
// Each part may carry non-digit decorations (the page renders labels around
// the numbers); digits are extracted per part and a part without digits
// counts as zero. Anything other than four colon-separated parts is an error.
func ParseCountdown(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("countdown %q: want 4 parts, got %d", s, len(parts))
	}

	nums := make([]int64, 4)
	for i, p := range parts {
		nums[i] = digits(p)
	}

	days, hours, mins, secs := nums[0], nums[1], nums[2], nums[3]
	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second
	return d, nil
}

// CountdownMinutes returns the whole minutes left in a countdown display
// string, matching the upstream granularity (seconds are ignored).
func CountdownMinutes(s string) (int, bool) {
	d, err := ParseCountdown(s)
	if err != nil {
		return 0, false
	}
	return int(d / time.Minute), true
}

// digits extracts the digit characters of s as a number, 0 if none.
func digits(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// terminalStatus reports whether an upstream status string marks a finished
// auction. The status API reports Indonesian labels; English forms are
// accepted for pushed snapshots.
func terminalStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "selesai", "ditutup", "closed", "ended", "finished":
		return true
	}
	return false
}
