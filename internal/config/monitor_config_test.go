package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"driftwatch/mocks/driftwatch/common/infrastructure/interfaces/utils"
)

func TestMonitorConfig_LoadConfigurations(t *testing.T) {
	u := utils.NewApplicationServiceMock(map[string]string{
		"ReferenceDir":        "/data/reference",
		"ReportsDir":          "/data/reports",
		"BufferCapacity":      "500",
		"DefaultWindowSize":   "100",
		"DriftShareThreshold": "0.25",
	})

	cfg := NewMonitorConfig()
	cfg.LoadConfigurations(u.AppService)

	assert.Equal(t, "/data/reference", cfg.ReferenceDir)
	assert.Equal(t, "/data/reports", cfg.ReportsDir)
	assert.Equal(t, 500, cfg.BufferCapacity)
	assert.Equal(t, 100, cfg.DefaultWindowSize)
	assert.Equal(t, 0.25, cfg.DriftShareThreshold)
}

func TestMonitorConfig_LoadConfigurations_Defaults(t *testing.T) {
	u := utils.NewApplicationServiceMock(map[string]string{})

	cfg := NewMonitorConfig()
	cfg.LoadConfigurations(u.AppService)

	assert.Equal(t, DefaultReferenceDir, cfg.ReferenceDir)
	assert.Equal(t, DefaultReportsDir, cfg.ReportsDir)
	assert.Equal(t, DefaultBufferCapacity, cfg.BufferCapacity)
	assert.Equal(t, DefaultWindowSize, cfg.DefaultWindowSize)
	assert.Equal(t, DefaultDriftShareThreshold, cfg.DriftShareThreshold)
}

func TestMonitorConfig_LoadConfigurations_InvalidValues(t *testing.T) {
	u := utils.NewApplicationServiceMock(map[string]string{
		"BufferCapacity":      "not-a-number",
		"DefaultWindowSize":   "-5",
		"DriftShareThreshold": "1.5",
	})

	cfg := NewMonitorConfig()
	cfg.LoadConfigurations(u.AppService)

	assert.Equal(t, DefaultBufferCapacity, cfg.BufferCapacity)
	assert.Equal(t, DefaultWindowSize, cfg.DefaultWindowSize)
	assert.Equal(t, DefaultDriftShareThreshold, cfg.DriftShareThreshold)
}
