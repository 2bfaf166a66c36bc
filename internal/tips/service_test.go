package tips

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"calmcast/internal/config"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts Options) ([]string, error) {
	args := m.Called(ctx, prompt, opts)
	tips, _ := args.Get(0).([]string)
	return tips, args.Error(1)
}

func newTestService(gen TextGenerator) *Service {
	return NewService(gen, config.GeneratorConfig{
		Temperature:       0.8,
		TopP:              0.9,
		RepetitionPenalty: 1.2,
		MaxTokens:         120,
	}, config.TipsConfig{SingleCandidates: 3, BatchCandidates: 5})
}

func TestSingleTipHappyPath(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(o Options) bool {
		return o.N == 3 && o.Temperature == 0.8 && o.MaxTokens == 120
	})).Return([]string{
		"1. Take a ten minute walk outside before your next meeting.",
		"2. Write down the single biggest worry and one step against it.",
	}, nil)

	svc := newTestService(gen)
	got := svc.SingleTip(context.Background(), TipRequest{PredictedAnxiety: 6})

	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"Take a ten minute walk outside before your next meeting.",
		"Write down the single biggest worry and one step against it.",
	}, lines)
	gen.AssertExpectations(t)
}

func TestSingleTipPromptIncludesRequest(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Anxiety: 8/10") && strings.HasSuffix(p, "\nTips:\n1.")
	}), mock.Anything).Return([]string{"Try stretching for five minutes every hour today."}, nil)

	svc := newTestService(gen)
	svc.SingleTip(context.Background(), TipRequest{PredictedAnxiety: 8})
	gen.AssertExpectations(t)
}

func TestSingleTipGeneratorErrorFallsBack(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("backend down"))

	svc := newTestService(gen)
	got := svc.SingleTip(context.Background(), TipRequest{PredictedAnxiety: 8})
	assert.Equal(t, strings.Join(FallbackTips(8), "\n"), got)
}

func TestSingleTipDegenerateOutputFallsBack(t *testing.T) {
	gen := new(mockGenerator)
	// Everything the generator returns is filtered away.
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"Mon:3, Tue:4, Wed:3", "too short"}, nil)

	svc := newTestService(gen)
	got := svc.SingleTip(context.Background(), TipRequest{PredictedAnxiety: 2})
	assert.Equal(t, strings.Join(FallbackTips(2), "\n"), got)
}

func TestSingleTipNilGenerator(t *testing.T) {
	svc := newTestService(nil)
	got := svc.SingleTip(context.Background(), TipRequest{PredictedAnxiety: 5})
	assert.Equal(t, strings.Join(FallbackTips(5), "\n"), got)
}

func TestBatchTipsNoFallback(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(o Options) bool {
		return o.N == 5
	})).Return(nil, errors.New("backend down"))

	svc := newTestService(gen)
	got := svc.BatchTips(context.Background(), TipRequest{PredictedAnxiety: 9})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBatchTipsReturnsFiltered(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]string{
		"3) Schedule a fixed wind-down hour with screens off tonight.",
		"Anxiety: 9/10; Sleep: 3h; Mood: 2/10",
	}, nil)

	svc := newTestService(gen)
	got := svc.BatchTips(context.Background(), TipRequest{PredictedAnxiety: 9})
	assert.Equal(t, []string{"Schedule a fixed wind-down hour with screens off tonight."}, got)
}
