package usage

import (
	"fmt"
	"time"
)

// Period identifies the calendar month a counter row belongs to.
type Period struct {
	Month int
	Year  int
}

// PeriodOf derives the measurement period from a wall-clock instant (UTC).
func PeriodOf(now time.Time) Period {
	utc := now.UTC()
	return Period{Month: int(utc.Month()), Year: utc.Year()}
}

// String renders the period for log fields.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
