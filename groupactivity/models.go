package groupactivity

import "time"

// Enrollment is a roster entry. CounselorID is a denormalized snapshot of
// which counselor owned the beneficiary at enrollment time; cascade logic
// relies on it to decide membership without re-fetching beneficiary records.
type Enrollment struct {
	BeneficiaryID string
	CounselorID   string
}

// Activity is a scheduled collective session. It belongs to exactly one
// agency and has exactly one creator counselor. ClosedAt is set once the
// activity is past and finalized.
type Activity struct {
	ID        string
	Title     string
	AgencyID  string
	CreatorID string
	StartsAt  time.Time
	ClosedAt  *time.Time
	Roster    []Enrollment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Closed reports whether the activity has been finalized.
func (a Activity) Closed() bool {
	return a.ClosedAt != nil
}
