/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"driftwatch/common/client"
	"driftwatch/pkg/dto/monitor"
)

func restRoot(c echo.Context, r *Router) error {
	return c.JSON(http.StatusOK, echo.Map{
		"service": client.DriftMonitorServiceName,
		"endpoints": echo.Map{
			"health":          "GET /health",
			"capture":         "POST /capture",
			"capture_batch":   "POST /capture/batch",
			"analyze":         "POST /analyze",
			"reference":       "GET|POST /reference",
			"reports":         "GET /reports",
			"report":          "GET /reports/{name}",
			"production_data": "DELETE /production-data",
			"metrics":         "GET /metrics",
		},
	})
}

func restHealth(c echo.Context, r *Router) error {
	r.mu.Lock()
	lastAnalysis := ""
	if !r.lastAnalysis.IsZero() {
		lastAnalysis = r.lastAnalysis.Format(time.RFC3339)
	}
	lastVerdict := r.lastVerdict
	uptime := int64(time.Since(r.startTime).Seconds())
	r.mu.Unlock()

	return c.JSON(http.StatusOK, monitor.HealthResponse{
		Status:              "healthy",
		ReferenceDataLoaded: r.refStore.Current() != nil,
		ProductionDataCount: r.buffer.Len(),
		LastAnalysis:        lastAnalysis,
		LastVerdict:         lastVerdict,
		ReportsCount:        r.archive.Count(),
		UptimeSeconds:       uptime,
	})
}
