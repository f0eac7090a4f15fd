package authz

import (
	"context"

	"caseflow/actor"
	"caseflow/beneficiary"
	"caseflow/counselor"
	"caseflow/result"
)

// Rules decides whether an actor may invoke a reassignment command. Kind
// gates run in the pipeline's authorize step; the network-compatibility
// checks run inside the transfer flow once both counselors are loaded.
type Rules struct {
	supervisors SupervisorRegistry
}

func NewRules(supervisors SupervisorRegistry) *Rules {
	return &Rules{supervisors: supervisors}
}

// CanReassignAgency grants agency reassignment to support staff only.
func (r *Rules) CanReassignAgency(act actor.Actor) result.Result[result.Unit] {
	if act.Kind == actor.KindSupport {
		return result.OK()
	}
	return result.InsufficientRights[result.Unit]()
}

// CanTransferBeneficiaries grants beneficiary transfer to support staff and
// to counselors holding supervisory status. Beneficiary actors never pass.
func (r *Rules) CanTransferBeneficiaries(ctx context.Context, act actor.Actor) (result.Result[result.Unit], error) {
	switch act.Kind {
	case actor.KindSupport:
		return result.OK(), nil
	case actor.KindCounselor:
		ok, err := r.supervisors.IsSupervisor(ctx, act.ID)
		if err != nil {
			return result.Result[result.Unit]{}, err
		}
		if ok {
			return result.OK(), nil
		}
		return result.InsufficientRights[result.Unit](), nil
	default:
		return result.InsufficientRights[result.Unit](), nil
	}
}

// TransferNetworksCompatible applies the network rule matching the
// initiating actor's kind:
//   - support: source and target must share a network, the actor's own
//     network is irrelevant;
//   - responsible supervisor for the source network: source and target must
//     share a network;
//   - ordinary supervisor: actor, source and target networks must all be
//     identical.
func (r *Rules) TransferNetworksCompatible(ctx context.Context, act actor.Actor, source, target counselor.Counselor) (result.Result[result.Unit], error) {
	if act.Kind == actor.KindSupport {
		if source.Network != target.Network {
			return result.BadCommand[result.Unit]("source and target counselors belong to different networks"), nil
		}
		return result.OK(), nil
	}

	responsible, err := r.supervisors.IsResponsibleSupervisor(ctx, act.ID, source.Network)
	if err != nil {
		return result.Result[result.Unit]{}, err
	}
	if responsible {
		if source.Network != target.Network {
			return result.BadCommand[result.Unit]("source and target counselors belong to different networks"), nil
		}
		return result.OK(), nil
	}

	if act.Network != source.Network || source.Network != target.Network {
		return result.BadCommand[result.Unit]("transfer must stay within the supervisor's network"), nil
	}
	return result.OK(), nil
}

// CanViewBeneficiary reports whether the counselor may read the beneficiary
// file: the current owner always can, and during a temporary transfer the
// recorded initial counselor keeps access.
func CanViewBeneficiary(counselorID string, b beneficiary.Beneficiary) bool {
	if b.CounselorID == counselorID {
		return true
	}
	return b.InitialCounselorID != nil && *b.InitialCounselorID == counselorID
}
