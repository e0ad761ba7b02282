package assistant

import (
	"context"
	"time"

	"foodassistant/internal/models"
	"foodassistant/internal/models/providers"

	"go.uber.org/zap"
)

// Operations reported to the recorder
const (
	OpRecommend = "recommend"
	OpChat      = "chat"
)

// DefaultTimeout bounds a remote call when the engine is built without one
const DefaultTimeout = 15 * time.Second

// Recorder receives answer and latency observations. metrics.Collector satisfies it.
type Recorder interface {
	RecordAnswer(operation, source string)
	RecordInference(operation string, elapsed time.Duration, err error)
}

// Engine answers recommendation and chat requests. It prefers the remote
// provider and falls back to local rules whenever the remote path fails.
type Engine struct {
	provider providers.Provider
	timeout  time.Duration
	recorder Recorder
	logger   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithTimeout bounds each remote call
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithRecorder reports answer sources and inference latency
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine. provider may be nil, in which case every
// answer comes from the local fallback.
func NewEngine(provider providers.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RemoteConfigured reports whether a remote provider is wired in
func (e *Engine) RemoteConfigured() bool {
	return e.provider != nil
}

// ProviderName returns the remote provider's name, or "fallback" when none is set
func (e *Engine) ProviderName() string {
	if e.provider == nil {
		return "fallback"
	}
	return e.provider.Name()
}

// complete performs one bounded remote call
func (e *Engine) complete(ctx context.Context, op string, messages []providers.Message, opts providers.CompletionOptions) (string, error) {
	if e.provider == nil {
		return "", models.ErrInferenceNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	reply, err := e.provider.Complete(ctx, messages, opts)
	if e.recorder != nil {
		e.recorder.RecordInference(op, time.Since(start), err)
	}
	return reply, err
}

func (e *Engine) answered(op, source string) {
	if e.recorder != nil {
		e.recorder.RecordAnswer(op, source)
	}
}
