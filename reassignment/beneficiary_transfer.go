package reassignment

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"caseflow/actor"
	"caseflow/beneficiary"
	"caseflow/counselor"
	"caseflow/result"
)

// beneficiaryTransfer moves a batch of beneficiaries between counselors.
// All validation happens before the first write; once the batch is
// persisted, the activity cascade and broadcast-list strip run as
// independent writes and the per-beneficiary notices are dispatched
// detached.
type beneficiaryTransfer struct {
	svc *Service
}

func (h *beneficiaryTransfer) Authorize(ctx context.Context, _ TransferBeneficiaries, act actor.Actor) (result.Result[result.Unit], error) {
	return h.svc.rules.CanTransferBeneficiaries(ctx, act)
}

func (h *beneficiaryTransfer) Handle(ctx context.Context, cmd TransferBeneficiaries, act actor.Actor) (result.Result[result.Unit], error) {
	s := h.svc

	var (
		source, target counselor.Counselor
		sourceMissing  bool
		targetMissing  bool
		owned          []beneficiary.Beneficiary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = s.counselors.Get(gctx, cmd.SourceCounselorID)
		if errors.Is(err, counselor.ErrNotFound) {
			sourceMissing = true
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		target, err = s.counselors.Get(gctx, cmd.TargetCounselorID)
		if errors.Is(err, counselor.ErrNotFound) {
			targetMissing = true
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		owned, err = s.beneficiaries.FindAllByIDsAndCounselor(gctx, cmd.BeneficiaryIDs, cmd.SourceCounselorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Result[result.Unit]{}, err
	}

	if sourceMissing {
		return result.NotFound[result.Unit]("counselor", cmd.SourceCounselorID), nil
	}
	if targetMissing {
		return result.NotFound[result.Unit]("counselor", cmd.TargetCounselorID), nil
	}
	if len(owned) != len(cmd.BeneficiaryIDs) {
		return result.BadCommand[result.Unit]("invalid beneficiary list"), nil
	}

	if res, err := s.rules.TransferNetworksCompatible(ctx, act, source, target); err != nil || res.Failed() {
		return res, err
	}

	for i := range owned {
		owned[i].CounselorID = target.ID
		if cmd.Temporary {
			// Overwritten on every temporary transfer; the loan always
			// points at the latest source.
			owned[i].InitialCounselorID = &source.ID
		}
	}

	kind := beneficiary.TransferKindFor(act.Kind, cmd.Temporary)
	if err := s.beneficiaries.TransferAndSaveAll(ctx, owned, target.ID, source.ID, act.ID, kind); err != nil {
		return result.Result[result.Unit]{}, err
	}

	if crossesAgencies(source, target) {
		if err := s.consistency.CascadeUnenroll(ctx, cmd.BeneficiaryIDs, *source.AgencyID, false); err != nil {
			return result.Result[result.Unit]{}, err
		}
	}

	if !cmd.Temporary {
		if err := s.broadcasts.RemoveBeneficiariesFromCounselorLists(ctx, source.ID, cmd.BeneficiaryIDs); err != nil {
			return result.Result[result.Unit]{}, err
		}
	}

	nctx := context.WithoutCancel(ctx)
	for _, b := range owned {
		go func(b beneficiary.Beneficiary) {
			if err := s.notifier.SendTransferNotice(nctx, b); err != nil {
				s.log.Warn("transfer notice failed",
					zap.String("beneficiary_id", b.ID),
					zap.Error(err),
				)
			}
		}(b)
	}

	return result.OK(), nil
}

func (h *beneficiaryTransfer) Monitor(ctx context.Context, cmd TransferBeneficiaries, act actor.Actor) error {
	return h.svc.audit.RecordCommand(ctx, "transfer_beneficiaries", act, map[string]any{
		"source_counselor_id": cmd.SourceCounselorID,
		"target_counselor_id": cmd.TargetCounselorID,
		"beneficiary_count":   len(cmd.BeneficiaryIDs),
		"temporary":           cmd.Temporary,
	})
}

// crossesAgencies reports whether the transfer leaves the source agency's
// activity scope. A source without an agency has no activities to cascade.
func crossesAgencies(source, target counselor.Counselor) bool {
	if source.AgencyID == nil {
		return false
	}
	return target.AgencyID == nil || *source.AgencyID != *target.AgencyID
}
