package app

import (
	"strings"

	"calmcast/internal/bundle"
	"calmcast/internal/config"
	"calmcast/internal/logger"
	"calmcast/internal/predict"
	"calmcast/internal/tips"
	httpapi "calmcast/internal/transport/http"
)

// AppBuilder assembles the service graph. The construction funcs are
// swappable so tests can inject doubles without touching disk or
// network.
type AppBuilder struct {
	cfg *config.Config

	loadModelFn func(string) (*predict.Service, *bundle.Bundle, error)
	generatorFn func(config.GeneratorConfig) tips.TextGenerator
	bankFn      func(string) (*tips.Registry, error)
}

// AppBuilderOption overrides one construction step.
type AppBuilderOption func(*AppBuilder)

// WithModelLoader substitutes the bundle loading step.
func WithModelLoader(fn func(string) (*predict.Service, *bundle.Bundle, error)) AppBuilderOption {
	return func(b *AppBuilder) { b.loadModelFn = fn }
}

// WithGenerator substitutes the text generator construction.
func WithGenerator(fn func(config.GeneratorConfig) tips.TextGenerator) AppBuilderOption {
	return func(b *AppBuilder) { b.generatorFn = fn }
}

// NewAppBuilder prepares a builder with the production constructors.
func NewAppBuilder(cfg *config.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:         cfg,
		loadModelFn: predict.Load,
		generatorFn: buildGenerator,
		bankFn:      tips.NewRegistry,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build constructs the app: model first (fail fast on a bad bundle),
// then the tip stack, then the HTTP server.
func (b *AppBuilder) Build() (*App, error) {
	svc, loaded, err := b.loadModelFn(b.cfg.Model.BundlePath)
	if err != nil {
		return nil, err
	}

	gen := b.generatorFn(b.cfg.Generator)
	tipSvc := tips.NewService(gen, b.cfg.Generator, b.cfg.Tips)

	bank, err := b.bankFn(b.cfg.Tips.BankPath)
	if err != nil {
		return nil, err
	}

	server, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:      b.cfg.App.HTTPAddr,
		Predictor: svc,
		Tips:      tipSvc,
		Bank:      bank,
		Bundle:    loaded,
		TipAPIKey: b.cfg.Tips.APIKey,
	})
	if err != nil {
		bank.Close()
		return nil, err
	}
	return &App{cfg: b.cfg, server: server, bank: bank}, nil
}

func buildGenerator(cfg config.GeneratorConfig) tips.TextGenerator {
	if !cfg.Enabled || strings.TrimSpace(cfg.APIURL) == "" {
		logger.Warnf("text generator disabled, tip endpoints will serve fallbacks")
		return nil
	}
	return tips.NewClient(cfg)
}
