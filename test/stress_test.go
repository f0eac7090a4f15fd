package test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"caseflow/actor"
	"caseflow/agency"
	"caseflow/authz"
	"caseflow/beneficiary"
	"caseflow/broadcastlist"
	"caseflow/counselor"
	"caseflow/groupactivity"
	"caseflow/monitor"
	"caseflow/notify"
	"caseflow/reassignment"
	"caseflow/test/actors"
	"caseflow/test/chaos"
	"caseflow/test/infra"
	"caseflow/test/oracles"
)

var (
	flDuration    = flag.Duration("duration", 90*time.Second, "how long to run stress")
	flConcurrency = flag.Int("concurrency", 8, "number of concurrent actors")
	flSeed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flDSN         = flag.String("dsn", "", "existing Postgres DSN to reuse (avoids Docker)")
)

func seedRNG(seed int64) { rand.Seed(seed) }

func TestReassignmentConcurrency(t *testing.T) {
	flag.Parse()
	seed := *flSeed
	seedRNG(seed)

	var (
		pgC        *infra.PGContainer
		dsn        string
		err        error
		usedShared bool
	)
	ctx, cancel := context.WithTimeout(context.Background(), *flDuration+60*time.Second)
	defer cancel()

	switch {
	case *flDSN != "":
		dsn = *flDSN
		usedShared = true
		pgC = &infra.PGContainer{}
	case os.Getenv("CASEFLOW_TEST_PG_DSN") != "":
		dsn = os.Getenv("CASEFLOW_TEST_PG_DSN")
		usedShared = true
		pgC = &infra.PGContainer{}
	default:
		if dockerAvailable(ctx) {
			pgC, dsn, err = infra.StartPostgres16(ctx, "")
			if err != nil {
				t.Fatalf("start postgres: %v", err)
			}
		} else {
			dsn, err = infra.InitLocalDatabase(ctx)
			if err != nil {
				t.Fatalf("init local database: %v", err)
			}
			pgC = &infra.PGContainer{}
		}
	}
	defer pgC.Terminate(context.Background())

	// migrations
	pool, teardown, err := infra.ApplyMigrations(ctx, dsn, usedShared)
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	defer pool.Close()
	defer func() {
		if err := teardown(context.Background()); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	}()

	// seed minimal data
	seedData := mustSeed(t, ctx, pool)

	counselors := counselor.NewStore(pool)
	if roster, err := counselors.ListByAgency(ctx, seedData.a1); err != nil || len(roster) != 2 {
		t.Fatalf("seed sanity: expected 2 counselors in agency a1, got %d (err=%v)", len(roster), err)
	}

	logger := zap.NewNop()
	svc := reassignment.NewService(reassignment.Deps{
		Rules:         authz.NewRules(authz.NewSupervisorRegistry(pool)),
		Counselors:    counselors,
		Agencies:      agency.NewStore(pool),
		Beneficiaries: beneficiary.NewStore(pool),
		Activities:    groupactivity.NewStore(pool),
		Broadcasts:    broadcastlist.NewStore(pool),
		Notifier:      notify.NewLogSender(logger),
		Audit:         monitor.NewRecorder(pool),
		Log:           logger,
	})

	support := actor.Actor{ID: "stress-support", Kind: actor.KindSupport, Network: actor.NetworkCountyCouncil}

	// run actors
	g, ctx2 := errgroup.WithContext(ctx)
	stop := make(chan struct{})

	// transferrers battling over the same batches
	for i := 0; i < *flConcurrency; i++ {
		g.Go(func() error {
			return actors.Transferrer(ctx2, svc, seedData.c1, seedData.c2, seedData.batchSame, support, stop)
		})
		g.Go(func() error {
			return actors.Transferrer(ctx2, svc, seedData.c1, seedData.c3, seedData.batchCross, support, stop)
		})
	}

	// agency reassigner dragging c1's created activity between agencies
	g.Go(func() error {
		return actors.Reassigner(ctx2, svc, seedData.c1, seedData.a1, seedData.a2, support, stop)
	})
	// enroller re-adding beneficiaries to the activity roster
	g.Go(func() error {
		return actors.Enroller(ctx2, pool, seedData.activityID, seedData.batchCross, stop)
	})
	// list keeper re-adding beneficiaries to the broadcast list
	g.Go(func() error {
		return actors.ListKeeper(ctx2, pool, seedData.listID, seedData.batchSame, stop)
	})
	// chaos: kill random backend
	go chaos.TerminateRandomBackend(ctx2, pool, "", stop)

	// schedule oracle checks until duration reached
	deadline := time.Now().Add(*flDuration)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var failed bool
loop:
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			name, row, err := oracles.Run(ctx2, pool)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					break loop
				}
				t.Fatalf("oracle error: %v", err)
			}
			if name != "" {
				failed = true
				dumpRecent(t, ctx2, pool)
				t.Fatalf("Oracle %s failed. First row: %s (seed=%d)", name, row, seed)
			}
		}
	}

	close(stop)
	if err := g.Wait(); err != nil && !failed {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("actors errored: %v", err)
		}
	}
}

func dockerAvailable(ctx context.Context) bool {
	if _, err := exec.LookPath("docker"); err != nil {
		return false
	}
	c := exec.CommandContext(ctx, "docker", "info")
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c.Run() == nil
}

type seedIDs struct {
	a1, a2     string
	c1, c2, c3 string
	batchSame  []string
	batchCross []string
	activityID string
	listID     string
}

func mustSeed(t *testing.T, ctx context.Context, pool *pgxpool.Pool) seedIDs {
	t.Helper()
	var s seedIDs

	seedAgency := func(name string) string {
		var id string
		if err := pool.QueryRow(ctx, `INSERT INTO agencies (name, network) VALUES ($1, 'youth_mission') RETURNING id`, name).Scan(&id); err != nil {
			t.Fatalf("seed agency %s: %v", name, err)
		}
		return id
	}
	s.a1 = seedAgency(fmt.Sprintf("North %d", rand.Int63()))
	s.a2 = seedAgency(fmt.Sprintf("South %d", rand.Int63()))

	seedCounselor := func(name, agencyID string) string {
		var id string
		if err := pool.QueryRow(ctx, `
			INSERT INTO counselors (first_name, last_name, email, network, agency_id)
			VALUES ($1, 'Stress', $2, 'youth_mission', $3) RETURNING id
		`, name, fmt.Sprintf("%s%d@example.com", name, rand.Int63()), agencyID).Scan(&id); err != nil {
			t.Fatalf("seed counselor %s: %v", name, err)
		}
		return id
	}
	s.c1 = seedCounselor("c1", s.a1)
	s.c2 = seedCounselor("c2", s.a1)
	s.c3 = seedCounselor("c3", s.a2)

	seedBeneficiary := func(name string) string {
		var id string
		if err := pool.QueryRow(ctx, `
			INSERT INTO beneficiaries (first_name, last_name, counselor_id)
			VALUES ($1, 'Stress', $2) RETURNING id
		`, name, s.c1).Scan(&id); err != nil {
			t.Fatalf("seed beneficiary %s: %v", name, err)
		}
		return id
	}
	for i := 0; i < 3; i++ {
		s.batchSame = append(s.batchSame, seedBeneficiary(fmt.Sprintf("same-%d", i)))
		s.batchCross = append(s.batchCross, seedBeneficiary(fmt.Sprintf("cross-%d", i)))
	}

	if err := pool.QueryRow(ctx, `
		INSERT INTO group_activities (title, agency_id, creator_id, starts_at)
		VALUES ('Stress workshop', $1, $2, now()) RETURNING id
	`, s.a1, s.c1).Scan(&s.activityID); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	for _, id := range s.batchCross {
		if _, err := pool.Exec(ctx, `
			INSERT INTO group_activity_enrollments (activity_id, beneficiary_id, counselor_id)
			VALUES ($1, $2, $3)
		`, s.activityID, id, s.c1); err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
	}

	if err := pool.QueryRow(ctx, `
		INSERT INTO broadcast_lists (name, owner_counselor_id)
		VALUES ('Stress list', $1) RETURNING id
	`, s.c1).Scan(&s.listID); err != nil {
		t.Fatalf("seed broadcast list: %v", err)
	}
	for _, id := range s.batchSame {
		if _, err := pool.Exec(ctx, `
			INSERT INTO broadcast_list_members (list_id, beneficiary_id) VALUES ($1, $2)
		`, s.listID, id); err != nil {
			t.Fatalf("seed broadcast member: %v", err)
		}
	}

	return s
}

func dumpRecent(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()
	type dump struct {
		name string
		sql  string
	}
	dumps := []dump{
		{"beneficiary_transfers", `SELECT id, source_counselor_id, target_counselor_id, kind, created_at FROM beneficiary_transfers ORDER BY created_at DESC LIMIT 50`},
		{"command_audit", `SELECT id, command, actor_id, created_at FROM command_audit ORDER BY created_at DESC LIMIT 50`},
		{"group_activity_enrollments", `SELECT activity_id, beneficiary_id, counselor_id, enrolled_at FROM group_activity_enrollments ORDER BY enrolled_at DESC LIMIT 50`},
		{"counselors", `SELECT id, network, agency_id, updated_at FROM counselors ORDER BY updated_at DESC LIMIT 50`},
	}
	for _, d := range dumps {
		rows, err := pool.Query(ctx, d.sql)
		if err != nil {
			t.Logf("dump %s error: %v", d.name, err)
			continue
		}
		cols := rows.FieldDescriptions()
		t.Logf("-- %s --", d.name)
		for rows.Next() {
			vals, _ := rows.Values()
			// compact print
			buf := make([]any, 0, len(vals))
			for i := range vals {
				buf = append(buf, fmt.Sprintf("%s=%v", string(cols[i].Name), vals[i]))
			}
			t.Logf("%s", buf)
		}
		rows.Close()
	}
}
