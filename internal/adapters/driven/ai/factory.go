// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamallm "github.com/docvault-labs/docvault/internal/adapters/driven/llm/ollama"
	openaillm "github.com/docvault-labs/docvault/internal/adapters/driven/llm/openai"
	"github.com/docvault-labs/docvault/internal/adapters/driven/llm/throttle"
	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
// Both services are nil when no provider is configured or the provider
// is unreachable; callers degrade to text-only behaviour.
type InitResult struct {
	LLMService    driven.LLMService
	VisionService driven.VisionService
	Warnings      []string // Non-fatal issues that caused fallback.
	FellBack      bool     // True if fell back to text-only mode.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Initialise creates, validates, and throttles the configured AI
// services. Unreachable providers produce a warning and text-only
// fallback rather than an error.
func Initialise(settings *domain.LLMSettings) *InitResult {
	result := &InitResult{}

	if !settings.IsConfigured() {
		result.FellBack = true
		return result
	}

	llm, vision, err := createServices(settings)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("model services unavailable: %v", err))
		result.FellBack = true
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := llm.Ping(ctx); err != nil {
		llm.Close()
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("model provider unreachable: %v", err))
		result.FellBack = true
		return result
	}

	cfg := throttle.Config{
		RequestsPerSecond: settings.RequestsPerSecond,
		BurstSize:         int(settings.RequestsPerSecond * 2),
	}
	throttled := throttle.WrapLLM(llm, cfg)

	result.LLMService = throttled
	result.VisionService = throttle.WrapVisionShared(vision, throttled)
	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, _, err := createServices(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docvault config set' to fix",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'docvault config set' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// createServices creates the provider-specific LLM and vision services.
func createServices(settings *domain.LLMSettings) (driven.LLMService, driven.VisionService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc := ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		return svc, svc, nil

	case domain.AIProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, nil, err
		}
		return svc, svc, nil

	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
