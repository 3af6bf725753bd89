/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package monitor

// CaptureRequest is one prediction observation posted by the serving layer
type CaptureRequest struct {
	Features     map[string]FieldValue `json:"features"      validate:"required,min=1"`
	Prediction   *float64              `json:"prediction,omitempty"`
	Timestamp    string                `json:"timestamp,omitempty"`
	ModelVersion string                `json:"model_version,omitempty"`
}

// BatchCaptureRequest carries arbitrary-keyed flat records
type BatchCaptureRequest struct {
	Data         []map[string]FieldValue `json:"data"          validate:"required,min=1"`
	FeatureNames []string                `json:"feature_names,omitempty"`
}

// AnalyzeRequest triggers one drift analysis run
type AnalyzeRequest struct {
	WindowSize *int     `json:"window_size,omitempty" validate:"omitempty,min=0"`
	Threshold  *float64 `json:"threshold,omitempty"   validate:"omitempty,gte=0,lte=1"`
}

// ReferenceUploadRequest replaces the baseline dataset
type ReferenceUploadRequest struct {
	Data         []map[string]FieldValue `json:"data"          validate:"required"`
	FeatureNames []string                `json:"feature_names" validate:"required,min=1"`
	Description  string                  `json:"description,omitempty"`
}

type CaptureResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TotalSamples int    `json:"total_samples"`
}

type BatchCaptureResponse struct {
	Status       string   `json:"status"`
	Captured     int      `json:"captured"`
	Rejected     int      `json:"rejected,omitempty"`
	Errors       []string `json:"errors,omitempty"`
	TotalSamples int      `json:"total_samples"`
}

type ReferenceInfoResponse struct {
	Loaded   bool              `json:"loaded"`
	Message  string            `json:"message,omitempty"`
	Samples  int               `json:"samples,omitempty"`
	Features []string          `json:"features,omitempty"`
	Metadata ReferenceMetadata `json:"metadata,omitempty"`
}

type ReferenceUploadResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Samples  int      `json:"samples"`
	Features []string `json:"features"`
}

type HealthResponse struct {
	Status              string        `json:"status"`
	ReferenceDataLoaded bool          `json:"reference_data_loaded"`
	ProductionDataCount int           `json:"production_data_count"`
	LastAnalysis        string        `json:"last_analysis,omitempty"`
	LastVerdict         *DriftVerdict `json:"last_verdict,omitempty"`
	ReportsCount        int           `json:"reports_count"`
	UptimeSeconds       int64         `json:"uptime_seconds"`
}

// AnalyzeResponse mirrors the DriftVerdict plus the report location
type AnalyzeResponse struct {
	Status string `json:"status"`
	DriftVerdict
	ReportUrl string `json:"report_url"`
}
