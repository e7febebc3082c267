package assessment

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/skillproof/internal/llm"
)

func TestLLMGeneratorParsesBank(t *testing.T) {
	bank := `[
		{"skill":"Go","type":"MCQ","question":"What does make do?","options":["a","b","c","d"],"correct_answer":"a"},
		{"skill":"Go","type":"SYNTAX","question":"What prints?","options":["1","2","3","4"],"correct_answer":"2"}
	]`
	provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(bank)})
	gen := NewLLMGenerator(provider, 1024)

	questions, err := gen.Generate(context.Background(), []string{"Go"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}
	if questions[0].CorrectAnswer != "a" {
		t.Errorf("CorrectAnswer = %q, want %q", questions[0].CorrectAnswer, "a")
	}
	if questions[1].Type != TypeSyntax {
		t.Errorf("Type = %q, want %q", questions[1].Type, TypeSyntax)
	}
}

func TestLLMGeneratorRequest(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})
	gen := NewLLMGenerator(provider, 1024)

	_, err := gen.Generate(context.Background(), []string{"Go", "Python"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(provider.Calls) != 1 {
		t.Fatalf("oracle called %d times, want 1 (one request for the full skill list)", len(provider.Calls))
	}

	req := provider.Calls[0]
	if req.Schema != QuestionBankSchema {
		t.Error("request missing the question bank schema")
	}
	for _, skill := range []string{"Go", "Python"} {
		if !strings.Contains(req.Prompt, skill) {
			t.Errorf("prompt does not mention skill %q", skill)
		}
	}
	// 2 skills × 10 questions.
	if !strings.Contains(req.Prompt, "Total questions = 20") {
		t.Errorf("prompt does not state the total question count:\n%s", req.Prompt)
	}
}

func TestLLMGeneratorProviderError(t *testing.T) {
	provider := llm.NewMockProvider() // empty queue → unavailable
	gen := NewLLMGenerator(provider, 1024)

	if _, err := gen.Generate(context.Background(), []string{"Go"}); err == nil {
		t.Fatal("Generate() expected error")
	}
}
