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

	"github.com/labstack/echo/v4"

	driftErrors "driftwatch/common/errors"
	"driftwatch/pkg/dto/monitor"
)

func restGetReference(c echo.Context, r *Router) error {
	current := r.refStore.Current()
	if current == nil {
		return c.JSON(http.StatusOK, monitor.ReferenceInfoResponse{
			Loaded:  false,
			Message: "no reference data loaded",
		})
	}

	return c.JSON(http.StatusOK, monitor.ReferenceInfoResponse{
		Loaded:   true,
		Samples:  len(current.Records),
		Features: current.FeatureNames,
		Metadata: current.Metadata,
	})
}

func restUploadReference(c echo.Context, r *Router) error {
	lc := r.service.LoggingClient()

	var req monitor.ReferenceUploadRequest
	if err := c.Bind(&req); err != nil {
		lc.Errorf("failed to decode reference payload: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeBadRequest, "invalid reference payload",
		).ConvertToHTTPError()
	}
	if err := r.validate.Struct(req); err != nil {
		lc.Errorf("reference payload validation failed: %s", err.Error())
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeBadRequest, "reference upload requires data rows and feature names",
		).ConvertToHTTPError()
	}

	metadata, derr := r.refStore.Upload(req.Data, req.FeatureNames, req.Description)
	if derr != nil {
		lc.Errorf("reference upload failed: %s", derr.Error())
		return derr.ConvertToHTTPError()
	}
	lc.Infof("reference dataset replaced: %d samples, %d features", metadata.Samples, len(metadata.Features))

	return c.JSON(http.StatusOK, monitor.ReferenceUploadResponse{
		Status:   "success",
		Message:  fmt.Sprintf("reference data loaded with %d samples", metadata.Samples),
		Samples:  metadata.Samples,
		Features: metadata.Features,
	})
}
