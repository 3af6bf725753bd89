/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package monitor

type FeatureType string

const (
	FeatureTypeContinuous  FeatureType = "continuous"
	FeatureTypeCategorical FeatureType = "categorical"
)

// ReferenceMetadata is the sidecar persisted next to the baseline table
type ReferenceMetadata struct {
	Description  string                 `json:"description"`
	UploadedAt   string                 `json:"uploaded_at"`
	Samples      int                    `json:"samples"`
	Features     []string               `json:"features"`
	FeatureTypes map[string]FeatureType `json:"feature_types"`
}

// ReferenceDataset is the trusted baseline the production window is compared
// against. Replaced wholesale on upload, never partially mutated.
type ReferenceDataset struct {
	Records      []map[string]float64
	FeatureNames []string
	FeatureTypes map[string]FeatureType
	Metadata     ReferenceMetadata
}

// Column collects the values of one feature across all baseline rows,
// skipping rows where the feature is absent
func (d *ReferenceDataset) Column(feature string) []float64 {
	values := make([]float64, 0, len(d.Records))
	for _, row := range d.Records {
		if v, ok := row[feature]; ok {
			values = append(values, v)
		}
	}
	return values
}

// FeatureDrift is the outcome of one per-feature statistical test
type FeatureDrift struct {
	Score   float64 `json:"score"`
	Drifted bool    `json:"drifted"`
}

// DriftVerdict is the immutable result of one analysis run
type DriftVerdict struct {
	RunId            string                  `json:"run_id"`
	Timestamp        string                  `json:"timestamp"`
	DatasetDrifted   bool                    `json:"drift_detected"`
	DriftShare       float64                 `json:"drift_share"`
	Threshold        float64                 `json:"threshold"`
	FeatureResults   map[string]FeatureDrift `json:"feature_results"`
	DriftedFeatures  []string                `json:"drifted_features"`
	TotalFeatures    int                     `json:"total_features"`
	DriftedCount     int                     `json:"drifted_count"`
	ReferenceSamples int                     `json:"reference_samples"`
	CurrentSamples   int                     `json:"current_samples"`
	ReportName       string                  `json:"report_filename,omitempty"`
}
