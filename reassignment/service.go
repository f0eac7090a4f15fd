package reassignment

import (
	"context"

	"go.uber.org/zap"

	"caseflow/actor"
	"caseflow/agency"
	"caseflow/authz"
	"caseflow/beneficiary"
	"caseflow/broadcastlist"
	"caseflow/command"
	"caseflow/counselor"
	"caseflow/groupactivity"
	"caseflow/monitor"
	"caseflow/notify"
	"caseflow/result"
)

// Service exposes the two caseload reassignment commands. Each one runs
// through the command pipeline: authorization first, then the flow, then a
// detached audit record on success.
type Service struct {
	rules         *authz.Rules
	counselors    counselor.Store
	agencies      agency.Store
	beneficiaries beneficiary.Store
	activities    groupactivity.Store
	consistency   *groupactivity.Consistency
	broadcasts    broadcastlist.Store
	notifier      notify.Sender
	audit         monitor.Recorder
	log           *zap.Logger
}

type Deps struct {
	Rules         *authz.Rules
	Counselors    counselor.Store
	Agencies      agency.Store
	Beneficiaries beneficiary.Store
	Activities    groupactivity.Store
	Broadcasts    broadcastlist.Store
	Notifier      notify.Sender
	Audit         monitor.Recorder
	Log           *zap.Logger
}

func NewService(deps Deps) *Service {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Service{
		rules:         deps.Rules,
		counselors:    deps.Counselors,
		agencies:      deps.Agencies,
		beneficiaries: deps.Beneficiaries,
		activities:    deps.Activities,
		consistency:   groupactivity.NewConsistency(deps.Activities),
		broadcasts:    deps.Broadcasts,
		notifier:      deps.Notifier,
		audit:         deps.Audit,
		log:           deps.Log,
	}
}

// ReassignCounselorAgency executes the agency reassignment command for the
// given actor and returns a per-activity report on success.
func (s *Service) ReassignCounselorAgency(ctx context.Context, cmd ReassignCounselorAgency, act actor.Actor) (result.Result[[]ActivityReport], error) {
	return command.Execute(ctx, s.log, &agencyReassignment{svc: s}, cmd, act)
}

// TransferBeneficiaries executes the beneficiary transfer command for the
// given actor. The operation reports nothing beyond success or failure.
func (s *Service) TransferBeneficiaries(ctx context.Context, cmd TransferBeneficiaries, act actor.Actor) (result.Result[result.Unit], error) {
	return command.Execute(ctx, s.log, &beneficiaryTransfer{svc: s}, cmd, act)
}
