package actor

// Kind identifies the category of an authenticated caller.
type Kind string

const (
	KindBeneficiary Kind = "beneficiary"
	KindCounselor   Kind = "counselor"
	KindSupport     Kind = "support"
)

// Actor identifies who is invoking a command. It is supplied per call and
// never persisted by this core.
type Actor struct {
	ID      string
	Kind    Kind
	Network Network
}

func IsValidKind(k Kind) bool {
	switch k {
	case KindBeneficiary, KindCounselor, KindSupport:
		return true
	default:
		return false
	}
}
