package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"calmcast/internal/config"
	"calmcast/internal/logger"
	"calmcast/internal/train"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfgPath := os.Getenv("CALMCAST_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("initializing log file failed: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	// Training-time errors are fatal on purpose: fix the data or the
	// environment and rerun.
	result, err := train.Run(cfg)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	logger.Infof("training run %s done: bundle=%s split=%s train=%d test=%d mae=%.3f rmse=%.3f r2=%.3f",
		result.RunID, result.BundlePath, result.Strategy,
		result.NTrain, result.NTest,
		result.Metrics.MAE, result.Metrics.RMSE, result.Metrics.R2)
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
