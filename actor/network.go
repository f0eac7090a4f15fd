package actor

// Network is the organizational affiliation governing which agencies and
// authorization rules apply to a counselor or beneficiary.
type Network string

const (
	NetworkEmploymentOffice Network = "employment_office"
	// Sub-variants of the employment-office family. Their caseloads are
	// managed separately but share the employment-office agency referential.
	NetworkEmploymentOfficeYouth     Network = "employment_office_youth"
	NetworkEmploymentOfficeIntensive Network = "employment_office_intensive"

	NetworkYouthMission  Network = "youth_mission"
	NetworkCountyCouncil Network = "county_council"
)

// ReferenceNetwork maps every employment-office sub-variant onto the
// canonical employment-office network used for agency lookups. All other
// networks are their own reference.
func ReferenceNetwork(n Network) Network {
	switch n {
	case NetworkEmploymentOfficeYouth, NetworkEmploymentOfficeIntensive:
		return NetworkEmploymentOffice
	default:
		return n
	}
}

func IsValidNetwork(n Network) bool {
	switch n {
	case NetworkEmploymentOffice, NetworkEmploymentOfficeYouth, NetworkEmploymentOfficeIntensive,
		NetworkYouthMission, NetworkCountyCouncil:
		return true
	default:
		return false
	}
}
