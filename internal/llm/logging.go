package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/logger"
)

// Event describes one completed LLM call, for durable request logging.
type Event struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventSink receives LLM request events. The store package provides the
// durable implementation backed by the llm_requests table.
type EventSink interface {
	Record(ctx context.Context, ev Event) error
}

// LoggingProvider records every LLM request to the sink and the logger.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	log      *zap.Logger
}

// WithLogging wraps a Provider with request logging. A nil sink disables
// durable logging but keeps the zap output.
func WithLogging(p Provider, provider string, sink EventSink, log *zap.Logger) Provider {
	return &LoggingProvider{inner: p, provider: provider, sink: sink, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	ev := Event{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = resp.Model
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("purpose", purpose),
		zap.String("model", ev.Model),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("llm request", append(fields,
			zap.String("prompt_preview", logger.Truncate(req.Prompt, 200)))...)
	}

	// A failed event write must not fail the request itself.
	if l.sink != nil {
		if sinkErr := l.sink.Record(ctx, ev); sinkErr != nil {
			l.log.Warn("failed to record llm request event", zap.Error(sinkErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
