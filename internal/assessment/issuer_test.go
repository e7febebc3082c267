package assessment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhisek/skillproof/internal/store"
)

// In-memory repos implementing the store interfaces.

type mockResumeRepo struct {
	resumes map[int]*store.Resume
}

func (m *mockResumeRepo) Create(_ context.Context, r *store.Resume) error {
	m.resumes[r.ID] = r
	return nil
}

func (m *mockResumeRepo) ByID(_ context.Context, id int) (*store.Resume, error) {
	r, ok := m.resumes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r, nil
}

func (m *mockResumeRepo) LatestByUser(_ context.Context, _ int) (*store.Resume, error) {
	return nil, store.ErrNotFound
}

type mockTestRepo struct {
	tests  map[int]*store.GeneratedTest
	nextID int
}

func (m *mockTestRepo) Create(_ context.Context, t *store.GeneratedTest) error {
	m.nextID++
	t.ID = m.nextID
	m.tests[t.ID] = t
	return nil
}

func (m *mockTestRepo) ByID(_ context.Context, id int) (*store.GeneratedTest, error) {
	t, ok := m.tests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

type mockResultRepo struct {
	results map[int]*store.TestResult // keyed by resume id
	nextID  int
}

func (m *mockResultRepo) Create(_ context.Context, r *store.TestResult) error {
	m.nextID++
	r.ID = m.nextID
	m.results[r.ResumeID] = r
	return nil
}

func (m *mockResultRepo) ByResume(_ context.Context, resumeID int) (*store.TestResult, error) {
	r, ok := m.results[resumeID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r, nil
}

func (m *mockResultRepo) ExistsForResume(_ context.Context, resumeID int) (bool, error) {
	_, ok := m.results[resumeID]
	return ok, nil
}

type mockGenerator struct {
	questions []store.Question
	err       error
	calls     int
}

func (m *mockGenerator) Generate(_ context.Context, _ []string) ([]store.Question, error) {
	m.calls++
	return m.questions, m.err
}

func makeQuestions(n int) []store.Question {
	qs := make([]store.Question, n)
	for i := range qs {
		qs[i] = store.Question{
			Skill:         "Go",
			Type:          TypeMCQ,
			Question:      fmt.Sprintf("question %d", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}
	}
	return qs
}

type fixture struct {
	resumes *mockResumeRepo
	tests   *mockTestRepo
	results *mockResultRepo
	gen     *mockGenerator
	issuer  *Issuer
}

func newFixture(skills []string, questions []store.Question) *fixture {
	f := &fixture{
		resumes: &mockResumeRepo{resumes: map[int]*store.Resume{}},
		tests:   &mockTestRepo{tests: map[int]*store.GeneratedTest{}},
		results: &mockResultRepo{results: map[int]*store.TestResult{}},
		gen:     &mockGenerator{questions: questions},
	}
	f.resumes.resumes[1] = &store.Resume{
		ID:     1,
		UserID: 10,
		ParsedContent: datatypes.NewJSONType(store.ParsedResume{
			Skills: skills,
		}),
	}
	f.issuer = NewIssuer(f.resumes, f.tests, f.results, f.gen, zap.NewNop())
	return f
}

func TestIssueReturnsSanitizedBank(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(10))

	issued, err := f.issuer.Issue(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if issued.TestID == 0 {
		t.Error("TestID not assigned")
	}
	if issued.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", issued.TotalQuestions)
	}
	if len(issued.Questions) != 10 {
		t.Fatalf("len(Questions) = %d, want 10", len(issued.Questions))
	}

	// Virtual ids must be exactly {0..9} regardless of shuffle order.
	seen := make(map[int]bool)
	for _, q := range issued.Questions {
		if q.VirtualID < 0 || q.VirtualID >= 10 {
			t.Errorf("virtual id %d out of range", q.VirtualID)
		}
		if seen[q.VirtualID] {
			t.Errorf("duplicate virtual id %d", q.VirtualID)
		}
		seen[q.VirtualID] = true
	}
	if len(seen) != 10 {
		t.Errorf("got %d distinct virtual ids, want 10", len(seen))
	}

	// The persisted bank keeps the answers.
	bank := f.tests.tests[issued.TestID]
	if bank == nil {
		t.Fatal("question bank not persisted")
	}
	if got := len(bank.Questions.Data()); got != 10 {
		t.Errorf("persisted bank has %d questions, want 10", got)
	}
}

func TestIssueShuffleIsPresentationOnly(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(4))

	// Reverse instead of random so the order is observable.
	f.issuer.shuffle = func(qs []SanitizedQuestion) {
		for i, j := 0, len(qs)-1; i < j; i, j = i+1, j-1 {
			qs[i], qs[j] = qs[j], qs[i]
		}
	}

	issued, err := f.issuer.Issue(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	wantIDs := []int{3, 2, 1, 0}
	for i, q := range issued.Questions {
		if q.VirtualID != wantIDs[i] {
			t.Errorf("Questions[%d].VirtualID = %d, want %d", i, q.VirtualID, wantIDs[i])
		}
	}

	// Persisted order is untouched.
	bank := f.tests.tests[issued.TestID].Questions.Data()
	for i, q := range bank {
		if q.Question != fmt.Sprintf("question %d", i) {
			t.Errorf("bank[%d] = %q, not original order", i, q.Question)
		}
	}
}

func TestIssueResumeNotFound(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(10))

	_, err := f.issuer.Issue(context.Background(), 10, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIssueNotOwner(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(10))

	_, err := f.issuer.Issue(context.Background(), 77, 1)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if f.gen.calls != 0 {
		t.Error("oracle called despite ownership failure")
	}
}

func TestIssueBlockedOnceResultExists(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(10))
	f.results.results[1] = &store.TestResult{ResumeID: 1}

	_, err := f.issuer.Issue(context.Background(), 10, 1)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("err = %v, want ErrAlreadyCompleted", err)
	}
	if f.gen.calls != 0 {
		t.Error("oracle called despite completed test")
	}
}

func TestIssueAllowedWhileUnsubmittedTestExists(t *testing.T) {
	f := newFixture([]string{"Go"}, makeQuestions(10))

	if _, err := f.issuer.Issue(context.Background(), 10, 1); err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}

	// No result yet, so a second issuance goes through and creates a
	// second, unrelated bank.
	issued, err := f.issuer.Issue(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("second Issue() error = %v", err)
	}
	if len(f.tests.tests) != 2 {
		t.Errorf("have %d banks, want 2", len(f.tests.tests))
	}
	if issued.TestID != 2 {
		t.Errorf("second TestID = %d, want 2", issued.TestID)
	}
}

func TestIssueNoSkills(t *testing.T) {
	f := newFixture([]string{}, makeQuestions(10))

	_, err := f.issuer.Issue(context.Background(), 10, 1)
	if !errors.Is(err, ErrNoSkills) {
		t.Errorf("err = %v, want ErrNoSkills", err)
	}
	if len(f.tests.tests) != 0 {
		t.Error("question bank created despite refused issuance")
	}
}

func TestIssueUpstreamFailure(t *testing.T) {
	f := newFixture([]string{"Go"}, nil)
	f.gen.err = errors.New("oracle down")

	_, err := f.issuer.Issue(context.Background(), 10, 1)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
	if len(f.tests.tests) != 0 {
		t.Error("question bank persisted despite oracle failure")
	}
}

func TestIssueEmptyOracleOutput(t *testing.T) {
	f := newFixture([]string{"Go"}, []store.Question{})

	_, err := f.issuer.Issue(context.Background(), 10, 1)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
	if len(f.tests.tests) != 0 {
		t.Error("empty question bank persisted")
	}
}
