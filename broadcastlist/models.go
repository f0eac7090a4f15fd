package broadcastlist

import "time"

// List is a counselor-owned mailing list of beneficiaries.
type List struct {
	ID               string
	Name             string
	OwnerCounselorID string
	BeneficiaryIDs   []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
