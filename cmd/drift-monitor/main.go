/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"

	"driftwatch/common/client"
	commService "driftwatch/common/service"
	"driftwatch/common/telemetry"
	"driftwatch/internal/router"
)

var (
	serviceInt        interfaces.ApplicationService
	appServiceCreator commService.AppServiceCreator
	metricsManager    *telemetry.MetricsManager
	osExit            = os.Exit
)

func getAppService() {
	if appServiceCreator == nil {
		appServiceCreator = &commService.AppService{}
	}
	svc, ok := appServiceCreator.NewAppService(client.DriftMonitorServiceKey)
	if !ok {
		err := fmt.Errorf("failed to start App Service: %s", client.DriftMonitorServiceKey)
		fmt.Println(err)
		osExit(-1)
	} else {
		serviceInt = svc
	}
}

func main() {

	if serviceInt == nil {
		getAppService()
	}
	service := serviceInt
	lc := service.LoggingClient()

	var err error
	metricsManager, err = telemetry.NewMetricsManager(service, client.DriftMonitorServiceName)
	if err != nil {
		lc.Errorf("Failed to create metrics manager. Returned error: %v", err)
		osExit(-1)
		return
	}

	router.NewRouter(service, client.DriftMonitorServiceName, metricsManager.MetricsMgr).LoadRestRoutes()

	metricsManager.Run()

	err = service.Run()
	if err != nil {
		lc.Error("Run returned error: ", err.Error())
		osExit(-1)
		return
	}

	osExit(0)

}
