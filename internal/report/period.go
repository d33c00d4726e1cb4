package report

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/quickspend/internal/dateutils"
)

// Period selects the time window of a listing or summary.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAll     Period = "all"
)

// ParsePeriod accepts the period names case-insensitively; "" means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodToday, PeriodWeekly, PeriodMonthly, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (want today, weekly, monthly or all)", s)
	}
}

// Window returns the inclusive bounds of the period around ref. bounded is
// false for PeriodAll.
func (p Period) Window(ref time.Time) (start, end time.Time, bounded bool) {
	switch p {
	case PeriodToday:
		return dateutils.StartOfDay(ref), dateutils.EndOfDay(ref), true
	case PeriodWeekly:
		return dateutils.StartOfWeek(ref), dateutils.EndOfWeek(ref), true
	case PeriodMonthly:
		return dateutils.StartOfMonth(ref), dateutils.EndOfDay(dateutils.EndOfMonth(ref)), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Contains reports whether ts falls inside the period around ref.
func (p Period) Contains(ts, ref time.Time) bool {
	start, end, bounded := p.Window(ref)
	if !bounded {
		return true
	}
	return !ts.Before(start) && !ts.After(end)
}
