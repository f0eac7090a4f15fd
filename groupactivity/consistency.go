package groupactivity

import (
	"context"
	"fmt"
)

// Consistency bundles the roster and ownership repairs shared by both
// reassignment flows. Every primitive persists one activity on its own;
// nothing spans the cascade in a single transaction, so a crash mid-cascade
// leaves the remaining activities untouched.
type Consistency struct {
	store Store
}

func NewConsistency(store Store) *Consistency {
	return &Consistency{store: store}
}

// Unenroll removes the given beneficiaries from the activity roster and
// persists the activity. Ids absent from the roster are ignored.
func (c *Consistency) Unenroll(ctx context.Context, a Activity, beneficiaryIDs []string) (Activity, error) {
	if len(beneficiaryIDs) == 0 {
		return a, nil
	}

	drop := make(map[string]bool, len(beneficiaryIDs))
	for _, id := range beneficiaryIDs {
		drop[id] = true
	}

	kept := make([]Enrollment, 0, len(a.Roster))
	for _, e := range a.Roster {
		if !drop[e.BeneficiaryID] {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(a.Roster) {
		return a, nil
	}

	a.Roster = kept
	if err := c.store.Save(ctx, a); err != nil {
		return Activity{}, fmt.Errorf("groupactivity: unenroll from %s: %w", a.ID, err)
	}
	return a, nil
}

// RepointAgency moves the activity to a new owning agency and persists it.
func (c *Consistency) RepointAgency(ctx context.Context, a Activity, agencyID string) (Activity, error) {
	a.AgencyID = agencyID
	if err := c.store.Save(ctx, a); err != nil {
		return Activity{}, fmt.Errorf("groupactivity: repoint %s: %w", a.ID, err)
	}
	return a, nil
}

// CascadeUnenroll removes the given beneficiaries from every activity owned
// by the agency, one independent save per touched activity. The interactive
// transfer path passes includeClosed=false; the support back-office path
// passes true and also rewrites finalized rosters.
func (c *Consistency) CascadeUnenroll(ctx context.Context, beneficiaryIDs []string, agencyID string, includeClosed bool) error {
	if len(beneficiaryIDs) == 0 {
		return nil
	}

	activities, err := c.store.GetAllByAgency(ctx, agencyID, includeClosed)
	if err != nil {
		return fmt.Errorf("groupactivity: cascade load agency %s: %w", agencyID, err)
	}

	for _, a := range activities {
		if _, err := c.Unenroll(ctx, a, beneficiaryIDs); err != nil {
			return err
		}
	}
	return nil
}
