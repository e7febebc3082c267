package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/skillproof/internal/llm"
	"github.com/abhisek/skillproof/internal/store"
)

// QuestionGenerator is the content oracle: skills in, answer-bearing
// question records out. The core treats its output as opaque beyond
// "non-empty"; per-record fields are not deep-validated here.
type QuestionGenerator interface {
	Generate(ctx context.Context, skills []string) ([]store.Question, error)
}

// LLMGenerator produces question banks through an llm.Provider with
// schema-constrained output.
type LLMGenerator struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLMGenerator creates the production question generator.
func NewLLMGenerator(provider llm.Provider, maxTokens int) *LLMGenerator {
	return &LLMGenerator{provider: provider, maxTokens: maxTokens}
}

func (g *LLMGenerator) Generate(ctx context.Context, skills []string) ([]store.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-bank")

	req := llm.Request{
		System:    generatorSystemPrompt,
		Prompt:    buildGeneratorPrompt(skills),
		Schema:    QuestionBankSchema,
		MaxTokens: g.maxTokens,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	var questions []store.Question
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	return questions, nil
}
