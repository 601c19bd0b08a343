// Package throttle wraps LLM services with a token-bucket rate limit
// so batch ingestion cannot flood a provider with requests.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure the wrappers implement the interfaces.
var (
	_ driven.LLMService    = (*LLM)(nil)
	_ driven.VisionService = (*Vision)(nil)
)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultConfig is a conservative default suitable for hosted
// providers.
var DefaultConfig = Config{RequestsPerSecond: 2.0, BurstSize: 4}

// LLM wraps a driven.LLMService with a token bucket. Every Generate
// waits for a token first; Ping and Close pass through untouched.
type LLM struct {
	inner   driven.LLMService
	limiter *rate.Limiter
}

// WrapLLM wraps an LLM service with rate limiting.
func WrapLLM(inner driven.LLMService, cfg Config) *LLM {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultConfig
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	return &LLM{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Generate waits for a token then delegates.
func (l *LLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.inner.Generate(ctx, prompt, opts)
}

// ModelName returns the wrapped model name.
func (l *LLM) ModelName() string {
	return l.inner.ModelName()
}

// Ping delegates without consuming a token.
func (l *LLM) Ping(ctx context.Context) error {
	return l.inner.Ping(ctx)
}

// Close delegates to the wrapped service.
func (l *LLM) Close() error {
	return l.inner.Close()
}

// Vision wraps a driven.VisionService with a token bucket. Sharing the
// limiter with an LLM wrapper keeps one global budget per provider.
type Vision struct {
	inner   driven.VisionService
	limiter *rate.Limiter
}

// WrapVision wraps a vision service with rate limiting.
func WrapVision(inner driven.VisionService, cfg Config) *Vision {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultConfig
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	return &Vision{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// WrapVisionShared wraps a vision service sharing an LLM wrapper's
// token bucket.
func WrapVisionShared(inner driven.VisionService, llm *LLM) *Vision {
	return &Vision{inner: inner, limiter: llm.limiter}
}

// DescribeImage waits for a token then delegates.
func (v *Vision) DescribeImage(ctx context.Context, image []byte, filename string) (string, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return v.inner.DescribeImage(ctx, image, filename)
}
