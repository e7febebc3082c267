package assessment

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhisek/skillproof/internal/store"
)

func newGraderFixture(questions []store.Question) (*Grader, *mockTestRepo, *mockResultRepo) {
	tests := &mockTestRepo{tests: map[int]*store.GeneratedTest{}}
	results := &mockResultRepo{results: map[int]*store.TestResult{}}

	tests.tests[1] = &store.GeneratedTest{
		ID:        1,
		UserID:    10,
		ResumeID:  5,
		Questions: datatypes.NewJSONType(questions),
	}

	return NewGrader(tests, results, zap.NewNop()), tests, results
}

func allCorrect(n int) map[string]string {
	answers := make(map[string]string, n)
	for i := 0; i < n; i++ {
		answers[strconv.Itoa(i)] = "a"
	}
	return answers
}

func TestGradeAllCorrect(t *testing.T) {
	g, _, results := newGraderFixture(makeQuestions(10))

	report, err := g.Grade(context.Background(), 10, 1, allCorrect(10), TrustMetrics{})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if report.Score != 100 {
		t.Errorf("Score = %v, want 100", report.Score)
	}
	if report.TrustScore != 100 {
		t.Errorf("TrustScore = %v, want 100", report.TrustScore)
	}
	if report.CorrectCount != 10 || report.Total != 10 {
		t.Errorf("CorrectCount/Total = %d/%d, want 10/10", report.CorrectCount, report.Total)
	}

	// Result is linked to the bank's own user and resume.
	res := results.results[5]
	if res == nil {
		t.Fatal("result not persisted")
	}
	if res.UserID != 10 || res.ResumeID != 5 {
		t.Errorf("result linked to (%d, %d), want (10, 5)", res.UserID, res.ResumeID)
	}
}

func TestGradePartialWithTelemetry(t *testing.T) {
	g, _, _ := newGraderFixture(makeQuestions(10))

	// 7 correct, 3 wrong.
	answers := allCorrect(7)
	answers["7"] = "b"
	answers["8"] = "b"
	answers["9"] = "b"

	report, err := g.Grade(context.Background(), 10, 1, answers, TrustMetrics{TabSwitches: 3, CopyAttempts: 1})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if report.Score != 70.0 {
		t.Errorf("Score = %v, want 70.0", report.Score)
	}
	if report.TrustScore != 65 {
		t.Errorf("TrustScore = %v, want 65", report.TrustScore)
	}
	if len(report.Details) != 10 {
		t.Errorf("len(Details) = %d, want 10", len(report.Details))
	}
}

func TestGradeSkipsInvalidKeys(t *testing.T) {
	g, _, _ := newGraderFixture(makeQuestions(10))

	answers := map[string]string{
		"0":   "a",
		"15":  "a",  // out of range
		"-1":  "a",  // negative
		"abc": "a",  // not an integer
	}

	report, err := g.Grade(context.Background(), 10, 1, answers, TrustMetrics{})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if report.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", report.CorrectCount)
	}
	if report.Total != 10 {
		t.Errorf("Total = %d, want 10", report.Total)
	}
	if len(report.Details) != 1 {
		t.Errorf("len(Details) = %d, want 1 (invalid entries must not appear)", len(report.Details))
	}
}

func TestGradeUnansweredCountAgainst(t *testing.T) {
	g, _, _ := newGraderFixture(makeQuestions(10))

	report, err := g.Grade(context.Background(), 10, 1, map[string]string{"0": "a", "1": "a"}, TrustMetrics{})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if report.Score != 20 {
		t.Errorf("Score = %v, want 20 (denominator is full bank length)", report.Score)
	}
}

func TestGradeExactStringMatch(t *testing.T) {
	qs := makeQuestions(1)
	qs[0].CorrectAnswer = "Answer"
	g, _, _ := newGraderFixture(qs)

	// Case and whitespace differences do not count.
	report, err := g.Grade(context.Background(), 10, 1, map[string]string{"0": "answer"}, TrustMetrics{})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if report.CorrectCount != 0 {
		t.Errorf("CorrectCount = %d, want 0 (comparison is exact)", report.CorrectCount)
	}
}

func TestGradeEmptyBank(t *testing.T) {
	report := score(nil, map[string]string{"0": "a"}, TrustMetrics{})
	if report.Score != 0 {
		t.Errorf("Score = %v, want 0 for empty bank", report.Score)
	}
	if report.Total != 0 {
		t.Errorf("Total = %v, want 0", report.Total)
	}
}

func TestGradeDeterministic(t *testing.T) {
	qs := makeQuestions(12)
	answers := allCorrect(12)
	answers["5"] = "b"
	answers["9"] = "c"
	trust := TrustMetrics{TabSwitches: 1, CopyAttempts: 2}

	first := score(qs, answers, trust)

	// Map iteration order varies per run, so repeat enough times that a
	// nondeterministic details order would be caught.
	for i := 0; i < 50; i++ {
		got := score(qs, answers, trust)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: report differs from first call:\n%+v\nvs\n%+v", i, got, first)
		}
	}

	// Details come back in virtual id order.
	for i, d := range first.Details {
		if d.Question != fmt.Sprintf("question %d", i) {
			t.Errorf("Details[%d] = %q, want %q", i, d.Question, fmt.Sprintf("question %d", i))
		}
	}
}

func TestGradeTestNotFound(t *testing.T) {
	g, _, _ := newGraderFixture(makeQuestions(10))

	_, err := g.Grade(context.Background(), 10, 99, nil, TrustMetrics{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGradeNotOwner(t *testing.T) {
	g, _, _ := newGraderFixture(makeQuestions(10))

	_, err := g.Grade(context.Background(), 77, 1, nil, TrustMetrics{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestGradeRejectsResubmission(t *testing.T) {
	g, _, results := newGraderFixture(makeQuestions(10))

	if _, err := g.Grade(context.Background(), 10, 1, allCorrect(10), TrustMetrics{}); err != nil {
		t.Fatalf("first Grade() error = %v", err)
	}

	_, err := g.Grade(context.Background(), 10, 1, allCorrect(10), TrustMetrics{})
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second Grade() err = %v, want ErrAlreadyCompleted", err)
	}
	if len(results.results) != 1 {
		t.Errorf("have %d results, want 1", len(results.results))
	}
}

func TestGradeDetailFields(t *testing.T) {
	qs := makeQuestions(2)
	qs[1].CorrectAnswer = "c"
	g, _, _ := newGraderFixture(qs)

	report, err := g.Grade(context.Background(), 10, 1, map[string]string{"1": "b"}, TrustMetrics{})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	want := store.AnswerDetail{
		Question:  "question 1",
		Selected:  "b",
		Correct:   "c",
		IsCorrect: false,
		Skill:     "Go",
	}
	if len(report.Details) != 1 || !reflect.DeepEqual(report.Details[0], want) {
		t.Errorf("Details = %+v, want [%+v]", report.Details, want)
	}
}
