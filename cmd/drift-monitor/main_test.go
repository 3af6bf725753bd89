/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"driftwatch/common/client"
	"driftwatch/mocks/driftwatch/common/infrastructure/interfaces/utils"
	svcmocks "driftwatch/mocks/driftwatch/common/service"
)

func newMainTestMock(t *testing.T) *utils.DriftMockUtils {
	t.Helper()
	return utils.NewApplicationServiceMock(map[string]string{
		"ReferenceDir":         t.TempDir(),
		"ReportsDir":           t.TempDir(),
		"MetricReportInterval": "30",
	})
}

func TestMain_getAppService(t *testing.T) {
	t.Run("getAppService - Passed", func(t *testing.T) {
		u := newMainTestMock(t)
		mockCreator := &svcmocks.MockAppServiceCreator{}
		appServiceCreator = mockCreator
		mockCreator.On("NewAppService", client.DriftMonitorServiceKey).
			Return(u.AppService, true)

		getAppService()
		assert.Equal(t, u.AppService, serviceInt, "Service should be assigned correctly")
		serviceInt = nil
		appServiceCreator = nil
	})
	t.Run("getAppService - Failed", func(t *testing.T) {
		u := newMainTestMock(t)
		mockCreator := &svcmocks.MockAppServiceCreator{}
		mockCreator.On("NewAppService", client.DriftMonitorServiceKey).
			Return(u.AppService, false)
		appServiceCreator = mockCreator

		exitCalled := false
		exitCode := 0
		originalOsExit := osExit
		osExit = func(code int) {
			exitCalled = true
			exitCode = code
		}

		getAppService()
		assert.True(t, exitCalled, "os.Exit should be called on failure")
		assert.Equal(t, -1, exitCode, "os.Exit should be called with -1")
		serviceInt = nil
		appServiceCreator = nil
		osExit = originalOsExit
	})
}

func TestMain_main(t *testing.T) {
	t.Run("main - Passed", func(t *testing.T) {
		u := newMainTestMock(t)
		u.AppService.On("Run").Return(nil)

		originalOsExit := osExit
		osExit = func(code int) {}
		defer func() { osExit = originalOsExit }()

		serviceInt = u.AppService
		main()

		u.AppService.AssertCalled(t, "Run")
		serviceInt = nil
	})
	t.Run("main - Failed (Run returned error)", func(t *testing.T) {
		u := newMainTestMock(t)
		u.AppService.On("Run").Return(errors.New("dummy error"))

		exitCode := 0
		originalOsExit := osExit
		osExit = func(code int) { exitCode = code }
		defer func() { osExit = originalOsExit }()

		serviceInt = u.AppService
		main()

		assert.Equal(t, -1, exitCode)
		serviceInt = nil
	})
}
