/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/metrics"
)

const defaultReportIntervalSeconds = 30

type MetricsManager struct {
	wg         sync.WaitGroup
	Ctx        context.Context
	MetricsMgr interfaces.MetricsManager
}

func NewMetricsManager(service sdkinterfaces.ApplicationService, serviceName string) (*MetricsManager, error) {
	lc := service.LoggingClient()

	d := defaultReportIntervalSeconds
	interval, err := service.GetAppSetting("MetricReportInterval")
	if err != nil {
		lc.Warnf("MetricReportInterval not found in configuration, defaulting to %d seconds", d)
	} else if parsed, perr := strconv.Atoi(interval); perr != nil {
		lc.Errorf("invalid MetricReportInterval %q: %s", interval, perr.Error())
		return nil, perr
	} else {
		d = parsed
	}
	duration := time.Duration(d) * time.Second

	reporter := NewLogReporter(service, serviceName, make(map[string]string))

	mmgr := MetricsManager{}
	mmgr.Ctx = context.Background()

	mmgr.MetricsMgr = metrics.NewManager(service.LoggingClient(), duration, reporter)
	if mmgr.MetricsMgr == nil {
		lc.Errorf("failed to create metrics manager")
		return nil, fmt.Errorf("failed to create metrics manager")
	}
	return &mmgr, nil
}

func (s *MetricsManager) Run() {
	s.MetricsMgr.Run(s.Ctx, &s.wg)
}
