package reassignment

// ReassignCounselorAgency moves one counselor to a different agency and
// drags the source agency's group activities along.
type ReassignCounselorAgency struct {
	CounselorID    string
	TargetAgencyID string
}

// ActivityReport is one line of the agency-reassignment report. For
// activities the counselor did not create, the agency is left in place and
// PriorAgencyID equals NewAgencyID.
type ActivityReport struct {
	ActivityID    string
	Title         string
	PriorAgencyID string
	NewAgencyID   string
	Removed       []string
}

// TransferBeneficiaries moves a batch of beneficiaries from one counselor's
// caseload to another's. A temporary transfer keeps a back-reference to the
// source counselor so they retain read access; a permanent one also strips
// the beneficiaries from the source's broadcast lists.
type TransferBeneficiaries struct {
	SourceCounselorID string
	TargetCounselorID string
	BeneficiaryIDs    []string
	Temporary         bool
}
