package beneficiary

import (
	"time"

	"caseflow/actor"
)

// TransferKind tags the audit trail of a caseload transfer with its duration
// and the kind of actor who initiated it.
type TransferKind string

const (
	TransferTemporaryByCounselor TransferKind = "temporary_by_counselor"
	TransferPermanentByCounselor TransferKind = "permanent_by_counselor"
	TransferTemporaryBySupport   TransferKind = "temporary_by_support"
	TransferPermanentBySupport   TransferKind = "permanent_by_support"
)

// TransferKindFor resolves the audit tag from the acting kind and duration.
func TransferKindFor(kind actor.Kind, temporary bool) TransferKind {
	if kind == actor.KindSupport {
		if temporary {
			return TransferTemporaryBySupport
		}
		return TransferPermanentBySupport
	}
	if temporary {
		return TransferTemporaryByCounselor
	}
	return TransferPermanentByCounselor
}

// Beneficiary is the recipient of case-management services. CounselorID is
// the current owner. InitialCounselorID, when set, records the pre-transfer
// owner for the duration of a temporary transfer so the original counselor
// keeps read access to the file.
type Beneficiary struct {
	ID                 string
	FirstName          string
	LastName           string
	CounselorID        string
	InitialCounselorID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
