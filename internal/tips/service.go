package tips

import (
	"context"
	"strings"

	"calmcast/internal/config"
	"calmcast/internal/logger"
)

// Result is the outcome of one generation pass: the accepted tips, or
// a degenerate marker when the generator failed or the filter kept
// nothing. Fallback selection is a separate pure step, so degenerate
// outcomes are data, not errors.
type Result struct {
	Tips       []string
	Degenerate bool
}

// Service runs the tip state machine: prompt build, generation,
// selection filter, and fallback on the single-shot path.
type Service struct {
	gen     TextGenerator
	opts    Options
	singleN int
	batchN  int
}

// NewService wires the generator and sampling options. A nil
// generator is allowed and makes every pass degenerate, which the
// single-shot path covers with fallbacks.
func NewService(gen TextGenerator, genCfg config.GeneratorConfig, tipCfg config.TipsConfig) *Service {
	return &Service{
		gen: gen,
		opts: Options{
			Temperature:       genCfg.Temperature,
			TopP:              genCfg.TopP,
			RepetitionPenalty: genCfg.RepetitionPenalty,
			MaxTokens:         genCfg.MaxTokens,
		},
		singleN: tipCfg.SingleCandidates,
		batchN:  tipCfg.BatchCandidates,
	}
}

// SingleTip returns the newline-joined tip text for one request. A
// degenerate generation falls back to the fixed set for the score;
// this path never fails.
func (s *Service) SingleTip(ctx context.Context, req TipRequest) string {
	res := s.generate(ctx, req, s.singleN)
	if res.Degenerate {
		return strings.Join(FallbackTips(req.PredictedAnxiety), "\n")
	}
	return strings.Join(res.Tips, "\n")
}

// BatchTips returns the filtered candidate set without a fallback; an
// empty slice is a legitimate outcome.
func (s *Service) BatchTips(ctx context.Context, req TipRequest) []string {
	res := s.generate(ctx, req, s.batchN)
	if res.Degenerate {
		return []string{}
	}
	return res.Tips
}

func (s *Service) generate(ctx context.Context, req TipRequest, n int) Result {
	if s.gen == nil {
		return Result{Degenerate: true}
	}
	prompt := BuildPrompt(req)
	opts := s.opts
	opts.N = n
	raw, err := s.gen.Generate(ctx, prompt, opts)
	if err != nil {
		logger.Warnf("tip generation failed, falling back: %v", err)
		return Result{Degenerate: true}
	}
	tips := SelectBestTips(raw)
	if len(tips) == 0 {
		logger.Warnf("tip generation degenerate: %d candidates, none usable", len(raw))
		return Result{Degenerate: true}
	}
	return Result{Tips: tips}
}
