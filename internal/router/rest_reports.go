/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func restListReports(c echo.Context, r *Router) error {
	items, derr := r.archive.List()
	if derr != nil {
		r.service.LoggingClient().Errorf("failed to list reports: %s", derr.Error())
		return derr.ConvertToHTTPError()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reports": items,
		"count":   len(items),
	})
}

func restGetReport(c echo.Context, r *Router) error {
	name := c.Param(reportName)
	content, derr := r.archive.Get(name)
	if derr != nil {
		r.service.LoggingClient().Warnf("report %s not served: %s", name, derr.Error())
		return derr.ConvertToHTTPError()
	}

	return c.HTMLBlob(http.StatusOK, content)
}
