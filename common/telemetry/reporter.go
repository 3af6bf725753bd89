/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	"github.com/hashicorp/go-multierror"
	gometrics "github.com/rcrowley/go-metrics"
)

// LogReporter periodically writes registered metric values to the service log.
// Values are read without being reset so the metrics endpoint always serves
// the live readings.
type LogReporter struct {
	service           sdkinterfaces.ApplicationService
	serviceName       string
	tags              map[string]string
	mu                sync.Mutex
	lastReportedValue map[string]string
}

func NewLogReporter(
	service sdkinterfaces.ApplicationService,
	serviceName string,
	tags map[string]string,
) interfaces.MetricsReporter {
	return &LogReporter{
		service:           service,
		serviceName:       serviceName,
		tags:              tags,
		lastReportedValue: make(map[string]string),
	}
}

func (r *LogReporter) Report(
	registry gometrics.Registry,
	metricTags map[string]map[string]string,
) error {
	var errs error
	reportedCount := 0

	lc := r.service.LoggingClient()

	registry.Each(func(name string, item interface{}) {
		if !strings.HasPrefix(name, "dw_") {
			return
		}
		var value string
		switch metric := item.(type) {
		case gometrics.Counter:
			value = strconv.FormatInt(metric.Count(), 10)
		case gometrics.Gauge:
			value = strconv.FormatInt(metric.Value(), 10)
		case gometrics.GaugeFloat64:
			value = strconv.FormatFloat(metric.Value(), 'f', -1, 64)
		case gometrics.Histogram:
			snapshot := metric.Snapshot()
			value = fmt.Sprintf("count=%d mean=%.2f p95=%.2f",
				snapshot.Count(), snapshot.Mean(), snapshot.Percentile(0.95))
		default:
			errs = multierror.Append(errs, fmt.Errorf("metric type %T not supported", metric))
			return
		}

		r.mu.Lock()
		if lastValue, exists := r.lastReportedValue[name]; !exists || lastValue != value {
			lc.Infof("telemetry %s: %s=%s", r.serviceName, name, value)
			r.lastReportedValue[name] = value
			reportedCount++
		}
		r.mu.Unlock()
	})

	if reportedCount == 0 {
		lc.Debugf("No telemetry metrics changed since last report.")
	}

	return errs
}
