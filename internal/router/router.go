/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	bootstrapinterfaces "github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"driftwatch/internal/config"
	"driftwatch/pkg/buffer"
	"driftwatch/pkg/dto/monitor"
	"driftwatch/pkg/drift"
	"driftwatch/pkg/helpers"
	"driftwatch/pkg/reference"
	"driftwatch/pkg/reports"
)

const reportName = "reportName"

// Router wires the drift monitor's components behind the service's REST
// surface. All shared mutable state lives here or inside the components it
// holds, never in package-level variables, so tests build a fresh Router per
// case.
type Router struct {
	service   interfaces.ApplicationService
	cfg       *config.MonitorConfig
	buffer    *buffer.ProductionBuffer
	refStore  reference.ReferenceStoreInterface
	analyzer  drift.AnalyzerInterface
	archive   reports.ReportArchiveInterface
	telemetry *helpers.Telemetry
	validate  *validator.Validate

	mu           sync.Mutex
	lastAnalysis time.Time
	lastVerdict  *monitor.DriftVerdict
	startTime    time.Time
}

func NewRouter(s interfaces.ApplicationService, serviceName string, metricsManager bootstrapinterfaces.MetricsManager) *Router {
	router := new(Router)
	router.service = s

	cfg := config.NewMonitorConfig()
	cfg.LoadConfigurations(s)
	router.cfg = cfg

	lc := s.LoggingClient()
	router.buffer = buffer.NewProductionBuffer(cfg.BufferCapacity)
	refStore := reference.NewReferenceStore(cfg.ReferenceDir, lc)
	if refStore.LoadFromDisk() {
		lc.Infof("reference dataset restored from %s", cfg.ReferenceDir)
	}
	router.refStore = refStore
	router.analyzer = drift.NewAnalyzer(lc)
	router.archive = reports.NewReportArchive(cfg.ReportsDir, lc)
	router.telemetry = helpers.NewTelemetry(s, serviceName, metricsManager)
	router.validate = validator.New()
	router.startTime = time.Now()

	return router
}

func (r *Router) LoadRestRoutes() {
	r.addServiceRoutes()
	r.addCaptureRoutes()
	r.addAnalyzeRoute()
	r.addReferenceRoutes()
	r.addReportRoutes()
}

func (r *Router) addServiceRoutes() {
	r.addRouteRoot()
	r.addRouteHealth()
	r.addRouteMetrics()
	r.addSwaggerRoute()
}

func (r *Router) addSwaggerRoute() {
	_ = r.service.AddCustomRoute("/swagger/*", interfaces.Authenticated,
		echoSwagger.EchoWrapHandler(echoSwagger.URL("swagger.json")), http.MethodGet)
}

// @Summary		Service descriptor listing available endpoints
// @Tags		Drift Monitor - Service
// @Produce		json
// @Success		200			{object}	map[string]interface{}
// @Router		/ [get]
func (r *Router) addRouteRoot() {
	_ = r.service.AddCustomRoute("/", interfaces.Authenticated, func(c echo.Context) error {
		return restRoot(c, r)
	}, http.MethodGet)
}

// @Summary		Service health and monitoring state
// @Tags		Drift Monitor - Service
// @Produce		json
// @Success		200			{object}	monitor.HealthResponse
// @Router		/health [get]
func (r *Router) addRouteHealth() {
	_ = r.service.AddCustomRoute("/health", interfaces.Authenticated, func(c echo.Context) error {
		return restHealth(c, r)
	}, http.MethodGet)
}

// @Summary		Plain-text exposition of all published gauges and counters
// @Tags		Drift Monitor - Service
// @Produce		plain
// @Success		200			{string}	string
// @Router		/metrics [get]
func (r *Router) addRouteMetrics() {
	_ = r.service.AddCustomRoute("/metrics", interfaces.Authenticated, func(c echo.Context) error {
		return c.String(http.StatusOK, r.telemetry.Exposition())
	}, http.MethodGet)
}

func (r *Router) addCaptureRoutes() {
	r.addRouteCapture()
	r.addRouteCaptureBatch()
	r.addRouteClearProductionData()
}

// @Summary		Capture one production prediction record
// @Tags		Drift Monitor - Capture
// @Accept		json
// @Produce		json
// @Param 		q 	body 	  monitor.CaptureRequest true "production record"
// @Success		200			{object}	monitor.CaptureResponse
// @Failure		400			{object}	error	"{"message":"Error message"}"
// @Router		/capture [post]
func (r *Router) addRouteCapture() {
	_ = r.service.AddCustomRoute("/capture", interfaces.Authenticated, func(c echo.Context) error {
		return restCapture(c, r)
	}, http.MethodPost)
}

// @Summary		Capture a batch of production records
// @Tags		Drift Monitor - Capture
// @Accept		json
// @Produce		json
// @Param 		q 	body 	  monitor.BatchCaptureRequest true "batch of flat records"
// @Success		200			{object}	monitor.BatchCaptureResponse
// @Failure		400			{object}	error	"{"message":"Error message"}"
// @Router		/capture/batch [post]
func (r *Router) addRouteCaptureBatch() {
	_ = r.service.AddCustomRoute("/capture/batch", interfaces.Authenticated, func(c echo.Context) error {
		return restCaptureBatch(c, r)
	}, http.MethodPost)
}

// @Summary		Discard all buffered production records
// @Tags		Drift Monitor - Capture
// @Produce		json
// @Success		200			{object}	map[string]string
// @Router		/production-data [delete]
func (r *Router) addRouteClearProductionData() {
	_ = r.service.AddCustomRoute("/production-data", interfaces.Authenticated, func(c echo.Context) error {
		return restClearProductionData(c, r)
	}, http.MethodDelete)
}

// @Summary		Run a drift analysis over the current production window
// @Tags		Drift Monitor - Analyze
// @Accept		json
// @Produce		json
// @Param 		q 	body 	  monitor.AnalyzeRequest false "window size and threshold overrides"
// @Success		200			{object}	monitor.AnalyzeResponse
// @Failure		400			{object}	error	"{"message":"Error message"}"
// @Failure		500			{object}	error	"{"message":"Error message"}"
// @Router		/analyze [post]
func (r *Router) addAnalyzeRoute() {
	_ = r.service.AddCustomRoute("/analyze", interfaces.Authenticated, func(c echo.Context) error {
		return restAnalyze(c, r)
	}, http.MethodPost)
}

func (r *Router) addReferenceRoutes() {
	r.addRouteGetReference()
	r.addRouteUploadReference()
}

// @Summary		Describe the currently loaded reference dataset
// @Tags		Drift Monitor - Reference
// @Produce		json
// @Success		200			{object}	monitor.ReferenceInfoResponse
// @Router		/reference [get]
func (r *Router) addRouteGetReference() {
	_ = r.service.AddCustomRoute("/reference", interfaces.Authenticated, func(c echo.Context) error {
		return restGetReference(c, r)
	}, http.MethodGet)
}

// @Summary		Replace the reference dataset
// @Tags		Drift Monitor - Reference
// @Accept		json
// @Produce		json
// @Param 		q 	body 	  monitor.ReferenceUploadRequest true "baseline rows and feature names"
// @Success		200			{object}	monitor.ReferenceUploadResponse
// @Failure		400			{object}	error	"{"message":"Error message"}"
// @Failure		500			{object}	error	"{"message":"Error message"}"
// @Router		/reference [post]
func (r *Router) addRouteUploadReference() {
	_ = r.service.AddCustomRoute("/reference", interfaces.Authenticated, func(c echo.Context) error {
		return restUploadReference(c, r)
	}, http.MethodPost)
}

func (r *Router) addReportRoutes() {
	r.addRouteListReports()
	r.addRouteGetReport()
}

// @Summary		List persisted drift reports newest first
// @Tags		Drift Monitor - Reports
// @Produce		json
// @Success		200			{object}	map[string]interface{}
// @Router		/reports [get]
func (r *Router) addRouteListReports() {
	_ = r.service.AddCustomRoute("/reports", interfaces.Authenticated, func(c echo.Context) error {
		return restListReports(c, r)
	}, http.MethodGet)
}

// @Summary		Fetch one persisted drift report
// @Tags		Drift Monitor - Reports
// @Produce		html
// @Param		reportName	path		string				true	"report file name"
// @Success		200			{string}	string	"report HTML"
// @Failure		404			{object}	error	"{"message":"Error message"}"
// @Router		/reports/{reportName} [get]
func (r *Router) addRouteGetReport() {
	_ = r.service.AddCustomRoute("/reports/:"+reportName, interfaces.Authenticated, func(c echo.Context) error {
		return restGetReport(c, r)
	}, http.MethodGet)
}
