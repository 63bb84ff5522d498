package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/dohsimpson/habittrove/internal/utils"
)

// FirstOccurrence returns the first occurrence of r at or after anchor, expressed in anchor's
// location. The rule's own DTSTART and COUNT are replaced by anchor and 1.
//
// Expansion runs on floating wall-clock time (anchor's local fields read as UTC) so that DST
// shifts never move an occurrence across a local day boundary; the result is then placed back
// into anchor's location.
func FirstOccurrence(r Rule, anchor time.Time) (time.Time, bool, error) {
	loc := anchor.Location()
	floating := time.Date(anchor.Year(), anchor.Month(), anchor.Day(),
		anchor.Hour(), anchor.Minute(), anchor.Second(), 0, time.UTC)

	opt := r.option()
	opt.Dtstart = floating
	opt.Count = 1
	if !r.Until.IsZero() {
		u := r.Until.UTC()
		opt.Until = time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.UTC)
	}

	set, err := rrule.NewRRule(opt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	all := set.All()
	if len(all) == 0 {
		return time.Time{}, false, nil
	}
	occ := all[0]
	return utils.DateIn(occ.Year(), occ.Month(), occ.Day(), occ.Hour(), occ.Minute(), occ.Second(), loc), true, nil
}
