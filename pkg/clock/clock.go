// Package clock produces the ISO-8601 timestamps written into score records.
package clock

import (
	"time"
)

// Mode selects the zone used when stamping records
type Mode string

const (
	ModeUTC  Mode = "utc"
	ModeUTC7 Mode = "utc+7"
)

// bangkokOffset is the fallback when the named zone is not on the host
const bangkokOffset = 7 * 60 * 60

// Stamper formats the current time for record timestamps
type Stamper struct {
	loc *time.Location
	now func() time.Time
}

// New creates a Stamper for the given mode. The utc+7 mode tries the
// Asia/Bangkok zone database entry first and falls back to a fixed
// +7h offset, so construction never fails.
func New(mode Mode) *Stamper {
	loc := time.UTC
	if mode == ModeUTC7 {
		if l, err := time.LoadLocation("Asia/Bangkok"); err == nil {
			loc = l
		} else {
			loc = time.FixedZone("UTC+7", bangkokOffset)
		}
	}
	return &Stamper{loc: loc, now: time.Now}
}

// NewFixed creates a Stamper that always reports the given instant, for tests
func NewFixed(mode Mode, at time.Time) *Stamper {
	s := New(mode)
	s.now = func() time.Time { return at }
	return s
}

// Now returns the current time formatted as an ISO-8601 string
func (s *Stamper) Now() string {
	return s.now().In(s.loc).Format(time.RFC3339)
}
