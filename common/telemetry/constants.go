/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

const (
	DriftDetectedGauge      = "dw_data_drift_detected"
	DriftShareGauge         = "dw_drift_share"
	DriftedFeaturesCount    = "dw_drifted_features_count"
	AnalysisTotalCount      = "dw_analysis_total"
	AnalysisDurationMs      = "dw_analysis_duration_ms"
	ProductionBufferSize    = "dw_production_buffer_size"
	FeatureDriftGaugePrefix = "dw_feature_drift."
	FeatureValuePrefix      = "dw_feature_value."
	MissingValuesPrefix     = "dw_missing_values_ratio."
)
