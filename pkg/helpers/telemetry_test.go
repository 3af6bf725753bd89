/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"driftwatch/common/client"
	"driftwatch/mocks/driftwatch/common/infrastructure/interfaces/utils"
	"driftwatch/pkg/dto/monitor"
)

func buildTelemetry(t *testing.T) *Telemetry {
	t.Helper()
	mockUtils := utils.NewApplicationServiceMock(map[string]string{})
	return NewTelemetry(mockUtils.AppService, client.DriftMonitorServiceName, nil)
}

func TestTelemetry_RecordAnalysis(t *testing.T) {
	tel := buildTelemetry(t)

	verdict := &monitor.DriftVerdict{
		DatasetDrifted: true,
		DriftShare:     0.5,
		DriftedCount:   2,
		TotalFeatures:  4,
		FeatureResults: map[string]monitor.FeatureDrift{
			"amount": {Score: 0.99, Drifted: true},
			"age":    {Score: 0.12, Drifted: false},
		},
	}
	tel.RecordAnalysis(verdict, 42*time.Millisecond)

	assert.Equal(t, int64(1), tel.DriftDetected.Value())
	assert.Equal(t, 0.5, tel.DriftShare.Value())
	assert.Equal(t, int64(2), tel.DriftedFeatures.Value())
	assert.Equal(t, int64(1), tel.AnalysisCount.Count())
	assert.Equal(t, int64(1), tel.AnalysisDuration.Count())

	notDrifted := &monitor.DriftVerdict{
		DatasetDrifted: false,
		DriftShare:     0.0,
		FeatureResults: map[string]monitor.FeatureDrift{},
	}
	tel.RecordAnalysis(notDrifted, time.Millisecond)
	assert.Equal(t, int64(0), tel.DriftDetected.Value())
	assert.Equal(t, int64(2), tel.AnalysisCount.Count())
}

func TestTelemetry_MissingValuesRatio(t *testing.T) {
	tel := buildTelemetry(t)

	for i := 0; i < 3; i++ {
		tel.RecordCapture(monitor.ProductionRecord{
			Features: map[string]monitor.FieldValue{
				"amount": monitor.NumberValue(float64(i)),
			},
		})
	}
	tel.RecordCapture(monitor.ProductionRecord{
		Features: map[string]monitor.FieldValue{
			"amount": monitor.NullValue(),
		},
	})

	assert.Equal(t, 0.25, tel.MissingValuesRatio("amount"))
	assert.Equal(t, 0.0, tel.MissingValuesRatio("never_seen"))
}

func TestTelemetry_Exposition(t *testing.T) {
	tel := buildTelemetry(t)

	tel.SetBufferSize(7)
	tel.RecordCapture(monitor.ProductionRecord{
		Features: map[string]monitor.FieldValue{
			"amount": monitor.NumberValue(10),
			"age":    monitor.NumberValue(30),
		},
	})
	tel.RecordAnalysis(&monitor.DriftVerdict{
		DatasetDrifted: true,
		DriftShare:     1.0,
		DriftedCount:   1,
		FeatureResults: map[string]monitor.FeatureDrift{
			"amount": {Score: 0.98, Drifted: true},
		},
	}, 5*time.Millisecond)

	out := tel.Exposition()

	assert.Contains(t, out, "dw_data_drift_detected 1\n")
	assert.Contains(t, out, "dw_drift_share 1\n")
	assert.Contains(t, out, "dw_production_buffer_size 7\n")
	assert.Contains(t, out, "dw_analysis_total 1\n")
	assert.Contains(t, out, "dw_feature_drift.amount 0.98\n")
	assert.Contains(t, out, "dw_missing_values_ratio.amount 0\n")
	assert.Contains(t, out, "dw_feature_value.age_p50 30\n")
}
