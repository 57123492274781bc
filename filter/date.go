// Package filter implements the date-range and keyword filter expressions
// applied to candidate videos.
package filter

import (
	"regexp"
	"strconv"
	"time"
)

var (
	sinceRe = regexp.MustCompile(`since:(\d{4}-\d{2}-\d{2})`)
	untilRe = regexp.MustCompile(`until:(\d{4}-\d{2}-\d{2})`)
	pastRe  = regexp.MustCompile(`past:(\d+)([hdmy])`)
)

// DateRange holds the clauses parsed from a date filter expression.
// Each clause is independent; absent clauses do not constrain anything.
type DateRange struct {
	since    time.Time
	until    time.Time
	past     time.Time
	hasSince bool
	hasUntil bool
	hasPast  bool
}

// ParseDateRange extracts the since:, until: and past: clauses from expr.
// The past: cutoff is computed relative to now. Unit approximations:
// h=hours, d=days, m=30 days, y=365 days. Malformed clause text is ignored,
// leaving that clause absent.
func ParseDateRange(expr string, now time.Time) DateRange {
	var r DateRange

	if m := sinceRe.FindStringSubmatch(expr); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			r.since = t.UTC()
			r.hasSince = true
		}
	}
	if m := untilRe.FindStringSubmatch(expr); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			r.until = t.UTC()
			r.hasUntil = true
		}
	}
	if m := pastRe.FindStringSubmatch(expr); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			var d time.Duration
			switch m[2] {
			case "h":
				d = time.Duration(n) * time.Hour
			case "d":
				d = time.Duration(n) * 24 * time.Hour
			case "m":
				d = time.Duration(n) * 30 * 24 * time.Hour
			case "y":
				d = time.Duration(n) * 365 * 24 * time.Hour
			}
			r.past = now.Add(-d)
			r.hasPast = true
		}
	}

	return r
}

// Empty reports whether no clause is present.
func (r DateRange) Empty() bool {
	return !r.hasSince && !r.hasUntil && !r.hasPast
}

// Match reports whether a publish time passes the filter.
//
// Clauses are OR'd: the video passes if it satisfies at least one present
// clause. An empty filter passes everything.
func (r DateRange) Match(publishedAt time.Time) bool {
	if r.Empty() {
		return true
	}

	if r.hasSince && !publishedAt.Before(r.since) {
		return true
	}
	if r.hasUntil && !publishedAt.After(r.until) {
		return true
	}
	if r.hasPast && !publishedAt.Before(r.past) {
		return true
	}
	return false
}
