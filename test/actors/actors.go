package actors

import (
	"context"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"caseflow/actor"
	"caseflow/reassignment"
)

// Transferrer bounces a batch of beneficiaries between two counselors through
// the transfer command, alternating temporary and permanent moves. A rejected
// batch just means the beneficiaries currently sit on the other side.
func Transferrer(ctx context.Context, svc *reassignment.Service, left, right string, benIDs []string, act actor.Actor, stop <-chan struct{}) error {
	source, target := left, right
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		res, err := svc.TransferBeneficiaries(ctx, reassignment.TransferBeneficiaries{
			SourceCounselorID: source,
			TargetCounselorID: target,
			BeneficiaryIDs:    benIDs,
			Temporary:         rand.Intn(2) == 0,
		}, act)
		if err != nil {
			// chaos kills backends mid-flight; infra errors are transient here
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if res.Failed() {
			source, target = target, source
		}
		time.Sleep(time.Duration(10+rand.Intn(30)) * time.Millisecond)
	}
}

// Reassigner bounces a counselor between two agencies through the agency
// reassignment command. "Already belongs" failures flip the direction.
func Reassigner(ctx context.Context, svc *reassignment.Service, counselorID, agencyA, agencyB string, act actor.Actor, stop <-chan struct{}) error {
	target, fallback := agencyB, agencyA
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		res, err := svc.ReassignCounselorAgency(ctx, reassignment.ReassignCounselorAgency{
			CounselorID:    counselorID,
			TargetAgencyID: target,
		}, act)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if res.Failed() {
			target, fallback = fallback, target
		}
		time.Sleep(time.Duration(20+rand.Intn(40)) * time.Millisecond)
	}
}

// Enroller keeps re-enrolling beneficiaries into an activity while transfers
// and reassignments race to unenroll them. Ownership is read at enrollment
// time from the beneficiary row.
func Enroller(ctx context.Context, pool *pgxpool.Pool, activityID string, benIDs []string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		id := benIDs[rand.Intn(len(benIDs))]
		_, _ = pool.Exec(ctx, `
			INSERT INTO group_activity_enrollments (activity_id, beneficiary_id, counselor_id)
			SELECT $1, id, counselor_id FROM beneficiaries WHERE id = $2
			ON CONFLICT DO NOTHING
		`, activityID, id)
		time.Sleep(time.Duration(15+rand.Intn(35)) * time.Millisecond)
	}
}

// ListKeeper re-adds beneficiaries to a broadcast list while permanent
// transfers strip them.
func ListKeeper(ctx context.Context, pool *pgxpool.Pool, listID string, benIDs []string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		id := benIDs[rand.Intn(len(benIDs))]
		_, _ = pool.Exec(ctx, `
			INSERT INTO broadcast_list_members (list_id, beneficiary_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, listID, id)
		time.Sleep(time.Duration(30+rand.Intn(50)) * time.Millisecond)
	}
}
