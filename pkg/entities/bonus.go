package entities

import "time"

// DailyBonusState tracks the calendar-date claim window. LastClaim is the
// zero time when the user has never claimed. Eligibility compares calendar
// dates, so the bonus resets at local midnight rather than 24 hours after
// the last claim.
type DailyBonusState struct {
	LastClaim time.Time `json:"last_claim,omitempty"`
	Streak    int       `json:"streak"`
}

// Claimed reports whether the user has ever claimed a bonus.
func (d *DailyBonusState) Claimed() bool {
	return !d.LastClaim.IsZero()
}
