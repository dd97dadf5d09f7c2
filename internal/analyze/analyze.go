// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

// Package analyze turns a customer-call transcript into a short summary and a
// sentiment label using an LLM provider.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Manaskashy/callsight/internal/llm"
)

// systemPrompt instructs the model to return only the analysis JSON object.
const systemPrompt = `You are an expert AI assistant for analyzing customer call transcripts.
Your task is to provide a summary and sentiment analysis.
The user will provide a transcript, and you must return ONLY a JSON object
with two keys: 'summary' and 'sentiment'.
- The 'summary' should be 2-3 sentences long.
- The 'sentiment' must be one of the following strings: 'Positive', 'Neutral', or 'Negative'.`

// analysisTemperature keeps the classification near-deterministic.
const analysisTemperature = 0.2

// defaultTokenBudget caps transcript size in estimated tokens. Oversized
// transcripts are rejected before any network call.
const defaultTokenBudget = 8000

// Sentiment is the model's classification of a transcript.
type Sentiment string

// Sentiment values. Anything the model returns outside the three expected
// labels maps to SentimentUnknown.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
	SentimentUnknown  Sentiment = "Unknown"
)

// Analysis is the result of analyzing one transcript.
type Analysis struct {
	Summary   string
	Sentiment Sentiment
	Model     string
	Usage     llm.Usage
	Latency   time.Duration
}

// Analyzer runs transcript analysis against an LLM provider.
type Analyzer struct {
	provider    llm.Provider
	model       string
	tokenBudget int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModel overrides the provider's default model for analysis requests.
func WithModel(model string) Option {
	return func(a *Analyzer) {
		a.model = model
	}
}

// WithTokenBudget overrides the transcript token budget.
func WithTokenBudget(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.tokenBudget = n
		}
	}
}

// New creates an Analyzer backed by the given provider.
func New(provider llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider:    provider,
		tokenBudget: defaultTokenBudget,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze sends the transcript to the provider and parses the returned JSON
// object into an Analysis. An empty transcript or one exceeding the token
// budget is rejected before the provider is called.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (*Analysis, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, errors.New("analyze: empty transcript")
	}

	if est := estimateTokens(transcript); est > a.tokenBudget {
		return nil, fmt.Errorf("analyze: transcript too long (~%d tokens, budget %d)", est, a.tokenBudget)
	}

	temp := analysisTemperature
	start := time.Now()
	resp, err := a.provider.Complete(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		Prompt:       transcript,
		Model:        a.model,
		Temperature:  &temp,
		JSONOnly:     true,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("analyze: completion failed: %w", err)
	}

	parsed, err := parseAnalysisResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("analyze: parse response: %w", err)
	}

	return &Analysis{
		Summary:   parsed.Summary,
		Sentiment: normalizeSentiment(parsed.Sentiment),
		Model:     resp.Model,
		Usage:     resp.Usage,
		Latency:   latency,
	}, nil
}

// normalizeSentiment maps the model's sentiment string onto one of the three
// expected labels, case-insensitively. Unrecognized values become Unknown.
func normalizeSentiment(s string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive
	case "neutral":
		return SentimentNeutral
	case "negative":
		return SentimentNegative
	default:
		return SentimentUnknown
	}
}
