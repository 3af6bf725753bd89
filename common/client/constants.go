/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package client

// Constants related to how services identify themselves in the Service Registry
const (
	// ServiceNames
	DriftMonitorServiceName = "driftwatch-monitor"

	// ServiceKeys - the service key should start with app- for appservices
	DriftMonitorServiceKey = "app-driftwatch-monitor"
)

// Reserved keys in a captured production record that are metadata, not features
const (
	RecordKeyPrediction   = "prediction"
	RecordKeyTimestamp    = "timestamp"
	RecordKeyModelVersion = "model_version"
)
