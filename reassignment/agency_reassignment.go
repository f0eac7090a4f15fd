package reassignment

import (
	"context"
	"errors"

	"caseflow/actor"
	"caseflow/agency"
	"caseflow/counselor"
	"caseflow/groupactivity"
	"caseflow/result"
)

// agencyReassignment moves one counselor to a new agency. Activities the
// counselor created follow them to the target agency, minus roster entries
// owned by other counselors; activities they merely participate in stay
// behind, minus the counselor's own beneficiaries. Each activity save and
// the final counselor save are independent writes.
type agencyReassignment struct {
	svc *Service
}

func (h *agencyReassignment) Authorize(_ context.Context, _ ReassignCounselorAgency, act actor.Actor) (result.Result[result.Unit], error) {
	return h.svc.rules.CanReassignAgency(act), nil
}

func (h *agencyReassignment) Handle(ctx context.Context, cmd ReassignCounselorAgency, _ actor.Actor) (result.Result[[]ActivityReport], error) {
	s := h.svc

	c, err := s.counselors.Get(ctx, cmd.CounselorID)
	if errors.Is(err, counselor.ErrNotFound) {
		return result.NotFound[[]ActivityReport]("counselor", cmd.CounselorID), nil
	}
	if err != nil {
		return result.Result[[]ActivityReport]{}, err
	}

	if c.AgencyID == nil {
		return result.BadCommand[[]ActivityReport]("counselor has no agency"), nil
	}
	priorAgencyID := *c.AgencyID

	target, err := s.agencies.Get(ctx, cmd.TargetAgencyID, actor.ReferenceNetwork(c.Network))
	if errors.Is(err, agency.ErrNotFound) {
		return result.NotFound[[]ActivityReport]("agency", cmd.TargetAgencyID), nil
	}
	if err != nil {
		return result.Result[[]ActivityReport]{}, err
	}

	if target.ID == priorAgencyID {
		return result.BadCommand[[]ActivityReport]("counselor already belongs to this agency"), nil
	}

	// Back-office bulk path: closed activities are rewritten too.
	activities, err := s.activities.GetAllByAgency(ctx, priorAgencyID, true)
	if err != nil {
		return result.Result[[]ActivityReport]{}, err
	}

	reports := make([]ActivityReport, 0, len(activities))
	for _, a := range activities {
		var report ActivityReport
		if a.CreatorID == c.ID {
			report, err = h.migrateOwnedActivity(ctx, a, c.ID, priorAgencyID, target.ID)
		} else {
			report, err = h.pruneForeignActivity(ctx, a, c.ID, priorAgencyID)
		}
		if err != nil {
			return result.Result[[]ActivityReport]{}, err
		}
		reports = append(reports, report)
	}

	c.AgencyID = &target.ID
	if err := s.counselors.Save(ctx, c); err != nil {
		return result.Result[[]ActivityReport]{}, err
	}

	return result.Success(reports), nil
}

// migrateOwnedActivity moves an activity the counselor created: everyone
// else's beneficiaries are unenrolled, then the activity follows the
// counselor to the target agency.
func (h *agencyReassignment) migrateOwnedActivity(ctx context.Context, a groupactivity.Activity, counselorID, priorAgencyID, targetAgencyID string) (ActivityReport, error) {
	others := rosterIDs(a, func(e groupactivity.Enrollment) bool { return e.CounselorID != counselorID })

	var err error
	if len(others) > 0 {
		a, err = h.svc.consistency.Unenroll(ctx, a, others)
		if err != nil {
			return ActivityReport{}, err
		}
	}
	if _, err = h.svc.consistency.RepointAgency(ctx, a, targetAgencyID); err != nil {
		return ActivityReport{}, err
	}

	return ActivityReport{
		ActivityID:    a.ID,
		Title:         a.Title,
		PriorAgencyID: priorAgencyID,
		NewAgencyID:   targetAgencyID,
		Removed:       others,
	}, nil
}

// pruneForeignActivity handles an activity created by someone else: only the
// moving counselor's beneficiaries leave the roster, the agency stays put.
func (h *agencyReassignment) pruneForeignActivity(ctx context.Context, a groupactivity.Activity, counselorID, agencyID string) (ActivityReport, error) {
	mine := rosterIDs(a, func(e groupactivity.Enrollment) bool { return e.CounselorID == counselorID })

	if len(mine) > 0 {
		if _, err := h.svc.consistency.Unenroll(ctx, a, mine); err != nil {
			return ActivityReport{}, err
		}
	}

	return ActivityReport{
		ActivityID:    a.ID,
		Title:         a.Title,
		PriorAgencyID: agencyID,
		NewAgencyID:   agencyID,
		Removed:       mine,
	}, nil
}

func (h *agencyReassignment) Monitor(ctx context.Context, cmd ReassignCounselorAgency, act actor.Actor) error {
	return h.svc.audit.RecordCommand(ctx, "reassign_counselor_agency", act, map[string]any{
		"counselor_id":     cmd.CounselorID,
		"target_agency_id": cmd.TargetAgencyID,
	})
}

// rosterIDs collects beneficiary ids of roster entries matching the
// predicate. Ownership is judged on the enrollment snapshot, never on
// historical transfer state.
func rosterIDs(a groupactivity.Activity, match func(groupactivity.Enrollment) bool) []string {
	ids := []string{}
	for _, e := range a.Roster {
		if match(e) {
			ids = append(ids, e.BeneficiaryID)
		}
	}
	return ids
}
