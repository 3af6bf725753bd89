/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package drift

import (
	"fmt"
	"sort"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/google/uuid"

	driftErrors "driftwatch/common/errors"
	"driftwatch/pkg/dto/monitor"
)

const DefaultDriftShareThreshold = 0.1

type AnalyzerInterface interface {
	Run(ref *monitor.ReferenceDataset, window []monitor.ProductionRecord, threshold float64) (*monitor.DriftVerdict, driftErrors.DriftError)
}

// Analyzer computes a DriftVerdict from a baseline and a production window.
// It holds no mutable state, so concurrent analyses over different windows
// cannot corrupt each other.
type Analyzer struct {
	continuousTest  FeatureTest
	categoricalTest FeatureTest
	lc              logger.LoggingClient
}

func NewAnalyzer(lc logger.LoggingClient) *Analyzer {
	return &Analyzer{
		continuousTest:  KolmogorovSmirnovTest{},
		categoricalTest: ChiSquareTest{},
		lc:              lc,
	}
}

// Run aligns the feature columns, applies the per-feature statistical test
// selected by the baseline's feature-type tag, and derives the dataset-level
// verdict: dataset drifted iff the share of drifted columns exceeds threshold.
func (a *Analyzer) Run(
	ref *monitor.ReferenceDataset,
	window []monitor.ProductionRecord,
	threshold float64,
) (*monitor.DriftVerdict, driftErrors.DriftError) {
	if ref == nil || len(ref.Records) == 0 {
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeNoReferenceLoaded,
			"reference data not loaded",
		)
	}
	if len(window) == 0 {
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeNoProductionData,
			"no production data available for analysis",
		)
	}
	if threshold <= 0 {
		threshold = DefaultDriftShareThreshold
	}

	aligned := a.alignFeatures(ref, window)
	if len(aligned) == 0 {
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeNoCommonFeatures,
			"no common features found between reference and current data",
		)
	}
	a.lc.Infof("Analyzing %d features: %v", len(aligned), aligned)

	verdict := &monitor.DriftVerdict{
		RunId:            uuid.NewString(),
		Timestamp:        time.Now().Format(time.RFC3339),
		Threshold:        threshold,
		FeatureResults:   make(map[string]monitor.FeatureDrift, len(aligned)),
		DriftedFeatures:  make([]string, 0),
		TotalFeatures:    len(aligned),
		ReferenceSamples: len(ref.Records),
		CurrentSamples:   len(window),
	}

	for _, feature := range aligned {
		refValues := ref.Column(feature)
		curValues := currentColumn(window, feature)
		score, drifted := a.compareFeature(ref, feature, refValues, curValues)
		verdict.FeatureResults[feature] = monitor.FeatureDrift{Score: score, Drifted: drifted}
		if drifted {
			verdict.DriftedFeatures = append(verdict.DriftedFeatures, feature)
		}
	}

	verdict.DriftedCount = len(verdict.DriftedFeatures)
	verdict.DriftShare = float64(verdict.DriftedCount) / float64(verdict.TotalFeatures)
	verdict.DatasetDrifted = verdict.DriftShare > threshold
	return verdict, nil
}

func (a *Analyzer) compareFeature(
	ref *monitor.ReferenceDataset,
	feature string,
	refValues, curValues []float64,
) (float64, bool) {
	// a constant reference column would break the statistical tests
	if constant, refValue := isConstant(refValues); constant {
		if curConstant, curValue := isConstant(curValues); curConstant && curValue == refValue {
			return 0, false
		}
		return 1, true
	}

	test := a.continuousTest
	if ref.FeatureTypes[feature] == monitor.FeatureTypeCategorical {
		test = a.categoricalTest
	}
	return test.Compare(refValues, curValues)
}

// alignFeatures intersects the reference feature set with the keys observed in
// the window, in sorted order for deterministic verdicts. Features with no
// usable numeric value in the window are excluded.
func (a *Analyzer) alignFeatures(
	ref *monitor.ReferenceDataset,
	window []monitor.ProductionRecord,
) []string {
	aligned := make([]string, 0, len(ref.FeatureNames))
	for _, feature := range ref.FeatureNames {
		if len(ref.Column(feature)) == 0 {
			continue
		}
		if len(currentColumn(window, feature)) > 0 {
			aligned = append(aligned, feature)
		}
	}
	sort.Strings(aligned)
	return aligned
}

func currentColumn(window []monitor.ProductionRecord, feature string) []float64 {
	values := make([]float64, 0, len(window))
	for _, record := range window {
		if value, ok := record.Features[feature]; ok {
			if num, ok := value.AsNumber(); ok {
				values = append(values, num)
			}
		}
	}
	return values
}

func isConstant(values []float64) (bool, float64) {
	if len(values) == 0 {
		return true, 0
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			return false, 0
		}
	}
	return true, first
}

// SummaryLine renders the one-line log form of a verdict
func SummaryLine(v *monitor.DriftVerdict) string {
	return fmt.Sprintf(
		"run=%s drifted=%t share=%.3f features=%d/%d ref=%d cur=%d",
		v.RunId, v.DatasetDrifted, v.DriftShare,
		v.DriftedCount, v.TotalFeatures,
		v.ReferenceSamples, v.CurrentSamples,
	)
}
