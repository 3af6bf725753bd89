/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package helpers

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/caio/go-tdigest/v4"
	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	gometrics "github.com/rcrowley/go-metrics"

	"driftwatch/common/telemetry"
	"driftwatch/pkg/dto/monitor"
)

// Telemetry tracks the monitor's operational counters and gauges along with
// per-feature value sketches used for the missing-values ratio and value
// distribution summaries.
type Telemetry struct {
	DriftDetected    gometrics.Gauge
	DriftShare       gometrics.GaugeFloat64
	DriftedFeatures  gometrics.Gauge
	AnalysisCount    gometrics.Counter
	AnalysisDuration gometrics.Histogram
	BufferSize       gometrics.Gauge

	service        sdkinterfaces.ApplicationService
	metricsManager interfaces.MetricsManager
	tags           map[string]string

	mu            sync.Mutex
	featureDrift  map[string]gometrics.GaugeFloat64
	featureValues map[string]*tdigest.TDigest
	featureSeen   map[string]int64
	featureMissed map[string]int64
}

func NewTelemetry(
	service sdkinterfaces.ApplicationService,
	serviceName string,
	metricsManager interfaces.MetricsManager,
) *Telemetry {
	t := Telemetry{
		DriftDetected:    gometrics.NewGauge(),
		DriftShare:       gometrics.NewGaugeFloat64(),
		DriftedFeatures:  gometrics.NewGauge(),
		AnalysisCount:    gometrics.NewCounter(),
		AnalysisDuration: gometrics.NewHistogram(gometrics.NewUniformSample(1024)),
		BufferSize:       gometrics.NewGauge(),
		service:          service,
		metricsManager:   metricsManager,
		featureDrift:     make(map[string]gometrics.GaugeFloat64),
		featureValues:    make(map[string]*tdigest.TDigest),
		featureSeen:      make(map[string]int64),
		featureMissed:    make(map[string]int64),
	}

	tags := make(map[string]string)
	tags["monitor_service"] = serviceName
	t.tags = tags

	if metricsManager != nil {
		metricsManager.Register(telemetry.DriftDetectedGauge, t.DriftDetected, tags)
		metricsManager.Register(telemetry.DriftShareGauge, t.DriftShare, tags)
		metricsManager.Register(telemetry.DriftedFeaturesCount, t.DriftedFeatures, tags)
		metricsManager.Register(telemetry.AnalysisTotalCount, t.AnalysisCount, tags)
		metricsManager.Register(telemetry.AnalysisDurationMs, t.AnalysisDuration, tags)
		metricsManager.Register(telemetry.ProductionBufferSize, t.BufferSize, tags)
	}

	return &t
}

// RecordCapture folds one accepted production record into the per-feature
// value sketches and missing-value counts.
func (t *Telemetry) RecordCapture(record monitor.ProductionRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for name, value := range record.Features {
		t.featureSeen[name]++
		if value.Kind == monitor.FieldKindNull {
			t.featureMissed[name]++
			continue
		}
		num, ok := value.AsNumber()
		if !ok {
			continue
		}
		sketch, exists := t.featureValues[name]
		if !exists {
			sketch, _ = tdigest.New()
			t.featureValues[name] = sketch
		}
		if err := sketch.Add(num); err != nil {
			t.service.LoggingClient().Debugf("failed to add value for feature %s to sketch: %s", name, err.Error())
		}
	}
}

// RecordAnalysis publishes the outcome of an analysis run.
func (t *Telemetry) RecordAnalysis(verdict *monitor.DriftVerdict, elapsed time.Duration) {
	t.AnalysisCount.Inc(1)
	t.AnalysisDuration.Update(elapsed.Milliseconds())
	t.DriftShare.Update(verdict.DriftShare)
	t.DriftedFeatures.Update(int64(verdict.DriftedCount))
	if verdict.DatasetDrifted {
		t.DriftDetected.Update(1)
	} else {
		t.DriftDetected.Update(0)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for name, result := range verdict.FeatureResults {
		gauge, exists := t.featureDrift[name]
		if !exists {
			gauge = gometrics.NewGaugeFloat64()
			t.featureDrift[name] = gauge
			if t.metricsManager != nil {
				t.metricsManager.Register(telemetry.FeatureDriftGaugePrefix+name, gauge, t.tags)
			}
		}
		gauge.Update(result.Score)
	}
}

func (t *Telemetry) SetBufferSize(size int) {
	t.BufferSize.Update(int64(size))
}

// MissingValuesRatio reports the fraction of captures where the named feature
// arrived null. Returns 0 for a feature never seen.
func (t *Telemetry) MissingValuesRatio(feature string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := t.featureSeen[feature]
	if seen == 0 {
		return 0
	}
	return float64(t.featureMissed[feature]) / float64(seen)
}

// Exposition renders all monitor metrics as plain text, one metric per line.
func (t *Telemetry) Exposition() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", telemetry.DriftDetectedGauge, t.DriftDetected.Value())
	fmt.Fprintf(&b, "%s %g\n", telemetry.DriftShareGauge, t.DriftShare.Value())
	fmt.Fprintf(&b, "%s %d\n", telemetry.DriftedFeaturesCount, t.DriftedFeatures.Value())
	fmt.Fprintf(&b, "%s %d\n", telemetry.AnalysisTotalCount, t.AnalysisCount.Count())
	durations := t.AnalysisDuration.Snapshot()
	fmt.Fprintf(&b, "%s_count %d\n", telemetry.AnalysisDurationMs, durations.Count())
	fmt.Fprintf(&b, "%s_mean %.2f\n", telemetry.AnalysisDurationMs, durations.Mean())
	fmt.Fprintf(&b, "%s_p95 %.2f\n", telemetry.AnalysisDurationMs, durations.Percentile(0.95))
	fmt.Fprintf(&b, "%s %d\n", telemetry.ProductionBufferSize, t.BufferSize.Value())

	t.mu.Lock()
	defer t.mu.Unlock()

	driftNames := make([]string, 0, len(t.featureDrift))
	for name := range t.featureDrift {
		driftNames = append(driftNames, name)
	}
	sort.Strings(driftNames)
	for _, name := range driftNames {
		fmt.Fprintf(&b, "%s%s %g\n", telemetry.FeatureDriftGaugePrefix, name, t.featureDrift[name].Value())
	}

	valueNames := make([]string, 0, len(t.featureSeen))
	for name := range t.featureSeen {
		valueNames = append(valueNames, name)
	}
	sort.Strings(valueNames)
	for _, name := range valueNames {
		if sketch, ok := t.featureValues[name]; ok && sketch.Count() > 0 {
			fmt.Fprintf(&b, "%s%s_p50 %g\n", telemetry.FeatureValuePrefix, name, sketch.Quantile(0.5))
			fmt.Fprintf(&b, "%s%s_p95 %g\n", telemetry.FeatureValuePrefix, name, sketch.Quantile(0.95))
		}
		seen := t.featureSeen[name]
		ratio := 0.0
		if seen > 0 {
			ratio = float64(t.featureMissed[name]) / float64(seen)
		}
		fmt.Fprintf(&b, "%s%s %g\n", telemetry.MissingValuesPrefix, name, ratio)
	}

	return b.String()
}
