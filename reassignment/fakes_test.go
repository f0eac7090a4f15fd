package reassignment

import (
	"context"
	"sync"

	"caseflow/actor"
	"caseflow/agency"
	"caseflow/beneficiary"
	"caseflow/counselor"
	"caseflow/groupactivity"
)

type fakeCounselorStore struct {
	counselors map[string]counselor.Counselor
	saved      []counselor.Counselor
}

func newFakeCounselorStore(cs ...counselor.Counselor) *fakeCounselorStore {
	s := &fakeCounselorStore{counselors: map[string]counselor.Counselor{}}
	for _, c := range cs {
		s.counselors[c.ID] = c
	}
	return s
}

func (s *fakeCounselorStore) Get(_ context.Context, id string) (counselor.Counselor, error) {
	c, ok := s.counselors[id]
	if !ok {
		return counselor.Counselor{}, counselor.ErrNotFound
	}
	return c, nil
}

func (s *fakeCounselorStore) Save(_ context.Context, c counselor.Counselor) error {
	s.counselors[c.ID] = c
	s.saved = append(s.saved, c)
	return nil
}

type fakeAgencyStore struct {
	agencies map[string]agency.Agency
}

func newFakeAgencyStore(as ...agency.Agency) *fakeAgencyStore {
	s := &fakeAgencyStore{agencies: map[string]agency.Agency{}}
	for _, a := range as {
		s.agencies[a.ID] = a
	}
	return s
}

func (s *fakeAgencyStore) Get(_ context.Context, id string, network actor.Network) (agency.Agency, error) {
	a, ok := s.agencies[id]
	if !ok || a.Network != network {
		return agency.Agency{}, agency.ErrNotFound
	}
	return a, nil
}

type transferCall struct {
	bens     []beneficiary.Beneficiary
	targetID string
	sourceID string
	actorID  string
	kind     beneficiary.TransferKind
}

type fakeBeneficiaryStore struct {
	beneficiaries map[string]beneficiary.Beneficiary
	transfers     []transferCall
}

func newFakeBeneficiaryStore(bs ...beneficiary.Beneficiary) *fakeBeneficiaryStore {
	s := &fakeBeneficiaryStore{beneficiaries: map[string]beneficiary.Beneficiary{}}
	for _, b := range bs {
		s.beneficiaries[b.ID] = b
	}
	return s
}

func (s *fakeBeneficiaryStore) FindAllByIDsAndCounselor(_ context.Context, ids []string, counselorID string) ([]beneficiary.Beneficiary, error) {
	out := []beneficiary.Beneficiary{}
	for _, id := range ids {
		b, ok := s.beneficiaries[id]
		if ok && b.CounselorID == counselorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBeneficiaryStore) TransferAndSaveAll(_ context.Context, bens []beneficiary.Beneficiary, targetID, sourceID, actorID string, kind beneficiary.TransferKind) error {
	for _, b := range bens {
		s.beneficiaries[b.ID] = b
	}
	s.transfers = append(s.transfers, transferCall{
		bens:     bens,
		targetID: targetID,
		sourceID: sourceID,
		actorID:  actorID,
		kind:     kind,
	})
	return nil
}

type fakeActivityStore struct {
	byAgency map[string][]groupactivity.Activity
	saved    []groupactivity.Activity

	includeClosedCalls []bool
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{byAgency: map[string][]groupactivity.Activity{}}
}

func (s *fakeActivityStore) add(a groupactivity.Activity) {
	s.byAgency[a.AgencyID] = append(s.byAgency[a.AgencyID], a)
}

func (s *fakeActivityStore) GetAllByAgency(_ context.Context, agencyID string, includeClosed bool) ([]groupactivity.Activity, error) {
	s.includeClosedCalls = append(s.includeClosedCalls, includeClosed)
	out := []groupactivity.Activity{}
	for _, a := range s.byAgency[agencyID] {
		if !includeClosed && a.Closed() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeActivityStore) Save(_ context.Context, a groupactivity.Activity) error {
	s.saved = append(s.saved, a)
	// Keep the fixture in sync so later loads observe the write.
	for agencyID, activities := range s.byAgency {
		for i := range activities {
			if activities[i].ID == a.ID {
				s.byAgency[agencyID] = append(activities[:i], activities[i+1:]...)
				break
			}
		}
	}
	s.byAgency[a.AgencyID] = append(s.byAgency[a.AgencyID], a)
	return nil
}

type fakeBroadcastStore struct {
	calls []struct {
		counselorID    string
		beneficiaryIDs []string
	}
}

func (s *fakeBroadcastStore) RemoveBeneficiariesFromCounselorLists(_ context.Context, counselorID string, beneficiaryIDs []string) error {
	s.calls = append(s.calls, struct {
		counselorID    string
		beneficiaryIDs []string
	}{counselorID, beneficiaryIDs})
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []beneficiary.Beneficiary
	err  error
	done chan struct{}
}

func newFakeNotifier(expected int) *fakeNotifier {
	n := &fakeNotifier{}
	if expected > 0 {
		n.done = make(chan struct{}, expected)
	}
	return n
}

func (n *fakeNotifier) SendTransferNotice(_ context.Context, b beneficiary.Beneficiary) error {
	n.mu.Lock()
	n.sent = append(n.sent, b)
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
	return n.err
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeAudit struct {
	mu       sync.Mutex
	commands []string
	err      error
	done     chan struct{}
}

func newFakeAudit() *fakeAudit {
	return &fakeAudit{done: make(chan struct{}, 8)}
}

func (a *fakeAudit) RecordCommand(_ context.Context, command string, _ actor.Actor, _ map[string]any) error {
	a.mu.Lock()
	a.commands = append(a.commands, command)
	a.mu.Unlock()
	a.done <- struct{}{}
	return a.err
}

func (a *fakeAudit) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.commands...)
}

type fakeRegistry struct {
	supervisors map[string]bool
	responsible map[string]map[actor.Network]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		supervisors: map[string]bool{},
		responsible: map[string]map[actor.Network]bool{},
	}
}

func (f *fakeRegistry) IsResponsibleSupervisor(_ context.Context, actorID string, network actor.Network) (bool, error) {
	return f.responsible[actorID][network], nil
}

func (f *fakeRegistry) IsSupervisor(_ context.Context, actorID string) (bool, error) {
	return f.supervisors[actorID], nil
}
