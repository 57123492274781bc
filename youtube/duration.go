package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ytnotify/config"
)

// isoDurationRe matches the ISO-8601 duration subset the Data API emits
// (days, hours, minutes, seconds; no weeks, months or years).
var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration string such as "PT1H5M30S"
// into a time.Duration.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("youtube: invalid ISO-8601 duration %q", s)
	}

	days, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	hours, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(m[4]))

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// FormatDuration renders a duration with localized unit words, omitting
// zero-value components. A zero duration renders the seconds unit.
func FormatDuration(d time.Duration, lang config.Language) string {
	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	hourUnit, minUnit, secUnit := "h", "m", "s"
	if lang.Korean() {
		hourUnit, minUnit, secUnit = "시간", "분", "초"
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", hours, hourUnit))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", minutes, minUnit))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d%s", seconds, secUnit))
	}

	return strings.Join(parts, " ")
}

// FormatISODuration parses and renders an ISO-8601 duration in one step.
// Unparseable input degrades to the zero rendering instead of failing.
func FormatISODuration(iso string, lang config.Language) string {
	d, err := ParseISODuration(iso)
	if err != nil {
		return FormatDuration(0, lang)
	}
	return FormatDuration(d, lang)
}
