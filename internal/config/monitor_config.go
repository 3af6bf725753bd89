/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package config

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/spf13/cast"
)

const (
	DefaultReferenceDir        = "/app/reference"
	DefaultReportsDir          = "/app/reports"
	DefaultBufferCapacity      = 10000
	DefaultWindowSize          = 0 // 0 means analyze the whole buffer
	DefaultDriftShareThreshold = 0.1
)

type MonitorConfig struct {
	ReferenceDir        string
	ReportsDir          string
	BufferCapacity      int
	DefaultWindowSize   int
	DriftShareThreshold float64
}

func NewMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		ReferenceDir:        DefaultReferenceDir,
		ReportsDir:          DefaultReportsDir,
		BufferCapacity:      DefaultBufferCapacity,
		DefaultWindowSize:   DefaultWindowSize,
		DriftShareThreshold: DefaultDriftShareThreshold,
	}
}

func (cfg *MonitorConfig) LoadConfigurations(service interfaces.ApplicationService) {

	lc := service.LoggingClient()

	referenceDir, err := service.GetAppSetting("ReferenceDir")
	if err != nil {
		lc.Warnf("ReferenceDir not configured, using default %s", cfg.ReferenceDir)
	} else {
		cfg.ReferenceDir = referenceDir
	}

	reportsDir, err := service.GetAppSetting("ReportsDir")
	if err != nil {
		lc.Warnf("ReportsDir not configured, using default %s", cfg.ReportsDir)
	} else {
		cfg.ReportsDir = reportsDir
	}

	bufferCapacity, err := service.GetAppSetting("BufferCapacity")
	if err != nil {
		lc.Warnf("BufferCapacity not configured, using default %d", cfg.BufferCapacity)
	} else if parsed, perr := cast.ToIntE(bufferCapacity); perr != nil || parsed <= 0 {
		lc.Errorf("invalid BufferCapacity %q, using default %d", bufferCapacity, cfg.BufferCapacity)
	} else {
		cfg.BufferCapacity = parsed
	}

	windowSize, err := service.GetAppSetting("DefaultWindowSize")
	if err != nil {
		lc.Warnf("DefaultWindowSize not configured, using default %d", cfg.DefaultWindowSize)
	} else if parsed, perr := cast.ToIntE(windowSize); perr != nil || parsed < 0 {
		lc.Errorf("invalid DefaultWindowSize %q, using default %d", windowSize, cfg.DefaultWindowSize)
	} else {
		cfg.DefaultWindowSize = parsed
	}

	threshold, err := service.GetAppSetting("DriftShareThreshold")
	if err != nil {
		lc.Warnf("DriftShareThreshold not configured, using default %g", cfg.DriftShareThreshold)
	} else if parsed, perr := cast.ToFloat64E(threshold); perr != nil || parsed <= 0 || parsed >= 1 {
		lc.Errorf("invalid DriftShareThreshold %q, using default %g", threshold, cfg.DriftShareThreshold)
	} else {
		cfg.DriftShareThreshold = parsed
	}
}
