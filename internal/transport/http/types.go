// Package httpapi exposes the prediction and tip services over gin.
package httpapi

import "calmcast/internal/bundle"

type predictResponse struct {
	PredictedAnxiety float64 `json:"predicted_anxiety"`
}

type tipResponse struct {
	Tip string `json:"tip"`
}

type tipsResponse struct {
	Tips []string `json:"tips"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK           bool   `json:"ok"`
	ModelVersion string `json:"model_version,omitempty"`
	ModelLoaded  bool   `json:"model_loaded"`
}

type rootResponse struct {
	OK      bool     `json:"ok"`
	Service string   `json:"service"`
	Routes  []string `json:"routes"`
}

type modelResponse struct {
	Numeric   []string       `json:"numeric_features"`
	Trigger   []string       `json:"trigger_features"`
	Metrics   bundle.Metrics `json:"metrics"`
	NTrain    int            `json:"n_train"`
	NTest     int            `json:"n_test"`
	TrainedAt string         `json:"trained_at"`
	RunID     string         `json:"run_id,omitempty"`
	Version   string         `json:"version"`
}
