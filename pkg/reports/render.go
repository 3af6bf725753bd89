/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package reports

import (
	"bytes"
	"html/template"
	"sort"

	"driftwatch/pkg/dto/monitor"
)

var reportTemplate = template.Must(template.New("drift_report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Data Drift Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 6px 12px; text-align: left; }
.drifted { color: #b00020; font-weight: bold; }
.stable { color: #2e7d32; }
</style>
</head>
<body>
<h1>Data Drift Report</h1>
<p>Run {{.Verdict.RunId}} at {{.Verdict.Timestamp}}</p>
<h2>Dataset verdict:
{{if .Verdict.DatasetDrifted}}<span class="drifted">DRIFT DETECTED</span>
{{else}}<span class="stable">no drift</span>{{end}}</h2>
<table>
<tr><th>Drift share</th><td>{{printf "%.3f" .Verdict.DriftShare}}</td></tr>
<tr><th>Threshold</th><td>{{printf "%.3f" .Verdict.Threshold}}</td></tr>
<tr><th>Drifted features</th><td>{{.Verdict.DriftedCount}} of {{.Verdict.TotalFeatures}}</td></tr>
<tr><th>Reference samples</th><td>{{.Verdict.ReferenceSamples}}</td></tr>
<tr><th>Current samples</th><td>{{.Verdict.CurrentSamples}}</td></tr>
</table>
<h2>Per-feature results</h2>
<table>
<tr><th>Feature</th><th>Drift score</th><th>Status</th></tr>
{{range .Features}}
<tr>
<td>{{.Name}}</td>
<td>{{printf "%.4f" .Score}}</td>
<td>{{if .Drifted}}<span class="drifted">drifted</span>{{else}}<span class="stable">stable</span>{{end}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

type featureRow struct {
	Name    string
	Score   float64
	Drifted bool
}

// RenderHTML produces the immutable report artifact body for one verdict.
// Features are listed most-drifted first.
func RenderHTML(verdict *monitor.DriftVerdict) ([]byte, error) {
	features := make([]featureRow, 0, len(verdict.FeatureResults))
	for name, result := range verdict.FeatureResults {
		features = append(features, featureRow{Name: name, Score: result.Score, Drifted: result.Drifted})
	}
	sort.Slice(features, func(i, j int) bool {
		if features[i].Score != features[j].Score {
			return features[i].Score > features[j].Score
		}
		return features[i].Name < features[j].Name
	})

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, map[string]interface{}{
		"Verdict":  verdict,
		"Features": features,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
