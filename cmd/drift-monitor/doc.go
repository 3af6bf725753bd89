/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

//	@title			Drift Monitor APIs
//	@version		v3

// @BasePath	/
// @host		localhost:48110

// @securityDefinitions.basic  BasicAuth
// @Security BasicAuth

//go:generate swag init --parseInternal=true --generalInfo=doc.go --pd=true --ot=json --output=./res/swagger/
