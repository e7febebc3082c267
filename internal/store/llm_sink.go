package store

import (
	"context"

	"github.com/abhisek/skillproof/internal/llm"
)

// llmSink adapts the llm_requests table to llm.EventSink.
type llmSink struct {
	repo LLMEventRepo
}

// LLMSink returns an llm.EventSink that appends to the llm_requests table.
func (s *Store) LLMSink() llm.EventSink {
	return &llmSink{repo: s.LLMEvents()}
}

func (s *llmSink) Record(ctx context.Context, ev llm.Event) error {
	return s.repo.Append(ctx, &LLMRequest{
		Provider:     ev.Provider,
		Model:        ev.Model,
		Purpose:      ev.Purpose,
		InputTokens:  ev.InputTokens,
		OutputTokens: ev.OutputTokens,
		LatencyMs:    ev.LatencyMs,
		Success:      ev.Success,
		ErrorMessage: ev.ErrorMessage,
	})
}
