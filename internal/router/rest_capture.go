/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"

	driftErrors "driftwatch/common/errors"
	"driftwatch/pkg/dto/monitor"
)

func restCapture(c echo.Context, r *Router) error {
	lc := r.service.LoggingClient()

	var req monitor.CaptureRequest
	if err := c.Bind(&req); err != nil {
		lc.Errorf("failed to decode capture payload: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeIngestion, "invalid capture payload",
		).ConvertToHTTPError()
	}
	if err := r.validate.Struct(req); err != nil {
		lc.Errorf("capture payload validation failed: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeIngestion, "capture payload requires at least one feature",
		).ConvertToHTTPError()
	}

	record := monitor.ProductionRecord{
		Features:     req.Features,
		Prediction:   req.Prediction,
		Timestamp:    req.Timestamp,
		ModelVersion: req.ModelVersion,
	}
	record.Stamp(time.Now())

	total := r.buffer.Append(record)
	r.telemetry.RecordCapture(record)
	r.telemetry.SetBufferSize(total)

	return c.JSON(http.StatusOK, monitor.CaptureResponse{
		Status:       "success",
		Message:      "record captured",
		TotalSamples: total,
	})
}

// restCaptureBatch appends every parseable record and rejects the rest
// individually. A malformed record never aborts the batch or touches data
// already buffered.
func restCaptureBatch(c echo.Context, r *Router) error {
	lc := r.service.LoggingClient()

	var req monitor.BatchCaptureRequest
	if err := c.Bind(&req); err != nil {
		lc.Errorf("failed to decode batch capture payload: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeIngestion, "invalid batch capture payload",
		).ConvertToHTTPError()
	}
	if err := r.validate.Struct(req); err != nil {
		lc.Errorf("batch capture payload validation failed: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeIngestion, "batch requires at least one record",
		).ConvertToHTTPError()
	}

	var errs error
	var rejectedMessages []string
	now := time.Now()
	accepted := make([]monitor.ProductionRecord, 0, len(req.Data))
	for i, flat := range req.Data {
		record, derr := monitor.NewProductionRecordFromFlatMap(flat)
		if derr != nil {
			errs = multierror.Append(errs, fmt.Errorf("record %d: %s", i, derr.Message()))
			rejectedMessages = append(rejectedMessages, fmt.Sprintf("record %d: %s", i, derr.Message()))
			continue
		}
		record.Stamp(now)
		accepted = append(accepted, record)
	}
	if errs != nil {
		lc.Warnf("batch capture rejected %d of %d records: %s", len(rejectedMessages), len(req.Data), errs.Error())
	}

	total := r.buffer.AppendBatch(accepted)
	for _, record := range accepted {
		r.telemetry.RecordCapture(record)
	}
	r.telemetry.SetBufferSize(total)

	return c.JSON(http.StatusOK, monitor.BatchCaptureResponse{
		Status:       "success",
		Captured:     len(accepted),
		Rejected:     len(rejectedMessages),
		Errors:       rejectedMessages,
		TotalSamples: total,
	})
}

func restClearProductionData(c echo.Context, r *Router) error {
	r.buffer.Clear()
	r.telemetry.SetBufferSize(0)
	r.service.LoggingClient().Infof("production buffer cleared")

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "production data cleared",
	})
}
