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

	driftErrors "driftwatch/common/errors"
	"driftwatch/pkg/drift"
	"driftwatch/pkg/dto/monitor"
	"driftwatch/pkg/reports"
)

// restAnalyze snapshots the window under the buffer lock, computes the verdict
// outside of it, and persists the report before answering. A failed run leaves
// buffer, reference and archive untouched.
func restAnalyze(c echo.Context, r *Router) error {
	lc := r.service.LoggingClient()

	var req monitor.AnalyzeRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			lc.Errorf("failed to decode analyze payload: %s", err.Error())
			return driftErrors.NewCommonDriftError(
				driftErrors.ErrorTypeBadRequest, "invalid analyze payload",
			).ConvertToHTTPError()
		}
		if err := r.validate.Struct(req); err != nil {
			lc.Errorf("analyze payload validation failed: %s", err.Error())
			return driftErrors.NewCommonDriftError(
				driftErrors.ErrorTypeBadRequest, "window_size must be >= 0 and threshold within [0,1]",
			).ConvertToHTTPError()
		}
	}

	windowSize := r.cfg.DefaultWindowSize
	if req.WindowSize != nil {
		windowSize = *req.WindowSize
	}
	if windowSize <= 0 {
		windowSize = r.buffer.Len()
	}
	threshold := r.cfg.DriftShareThreshold
	if req.Threshold != nil && *req.Threshold > 0 {
		threshold = *req.Threshold
	}

	window := r.buffer.Window(windowSize)

	started := time.Now()
	verdict, derr := r.analyzer.Run(r.refStore.Current(), window, threshold)
	if derr != nil {
		lc.Errorf("drift analysis failed: %s", derr.Error())
		return derr.ConvertToHTTPError()
	}

	html, err := reports.RenderHTML(verdict)
	if err != nil {
		lc.Errorf("failed to render drift report: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeServerError, "failed to render drift report",
		).ConvertToHTTPError()
	}
	name, derr := r.archive.Save(html, started)
	if derr != nil {
		lc.Errorf("failed to persist drift report: %s", derr.Error())
		return derr.ConvertToHTTPError()
	}
	verdict.ReportName = name

	r.telemetry.RecordAnalysis(verdict, time.Since(started))
	r.telemetry.SetBufferSize(r.buffer.Len())

	r.mu.Lock()
	r.lastAnalysis = started
	r.lastVerdict = verdict
	r.mu.Unlock()

	lc.Infof("%s", drift.SummaryLine(verdict))

	return c.JSON(http.StatusOK, monitor.AnalyzeResponse{
		Status:       "success",
		DriftVerdict: *verdict,
		ReportUrl:    "/reports/" + name,
	})
}
