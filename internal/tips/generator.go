// Package tips turns a predicted anxiety score and its context into
// short supportive texts: prompt construction, black-box generation,
// a selection filter over the raw candidates, and threshold fallbacks
// when generation degenerates.
package tips

import "context"

// Options are the sampling parameters for one generation call.
type Options struct {
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	MaxTokens         int
	// N asks for that many independent candidate completions.
	N int
}

// TextGenerator is the black-box completion collaborator. The
// production implementation talks to an OpenAI-compatible backend;
// tests substitute a double.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) ([]string, error)
}
