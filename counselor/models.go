package counselor

import (
	"time"

	"caseflow/actor"
)

// Counselor is a staff member guiding a caseload of beneficiaries. A
// counselor is attached to at most one agency at a time; AgencyID is nil for
// counselors awaiting assignment.
type Counselor struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Network   actor.Network
	AgencyID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
