/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package errors

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeEmptyDataset      ErrorType = "EmptyDataset"
	ErrorTypeNoReferenceLoaded ErrorType = "NoReferenceLoaded"
	ErrorTypeNoProductionData  ErrorType = "NoProductionData"
	ErrorTypeNoCommonFeatures  ErrorType = "NoCommonFeatures"
	ErrorTypeNotFound          ErrorType = "NotFound"
	ErrorTypePersistence       ErrorType = "PersistenceError"
	ErrorTypeIngestion         ErrorType = "IngestionError"
	ErrorTypeBadRequest        ErrorType = "BadRequest"
	ErrorTypeServerError       ErrorType = "ServerError"
	ErrorTypeUnknown           ErrorType = "Unknown"
)

type CommonDriftError struct {
	errorType ErrorType
	message   string
}

type DriftError interface {
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	Error() string
	ConvertToHTTPError() *echo.HTTPError
}

func (e CommonDriftError) ErrorType() ErrorType {
	return e.errorType
}

func (e CommonDriftError) Message() string {
	return e.message
}

func (e CommonDriftError) Error() string {
	return e.message
}

func (e CommonDriftError) IsErrorType(errorType ErrorType) bool {
	return errorType == e.errorType
}

func (e CommonDriftError) ConvertToHTTPError() *echo.HTTPError {
	return echo.NewHTTPError(errorTypeToCode(e.ErrorType()), echo.Map{
		"error":   string(e.ErrorType()),
		"message": e.Message(),
	})
}

func NewCommonDriftError(errorType ErrorType, message string) CommonDriftError {
	return CommonDriftError{errorType, message}
}

func errorTypeToCode(status ErrorType) int {
	switch status {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeEmptyDataset, ErrorTypeNoReferenceLoaded, ErrorTypeNoProductionData,
		ErrorTypeNoCommonFeatures, ErrorTypeIngestion, ErrorTypeBadRequest:
		return http.StatusBadRequest
	case ErrorTypePersistence, ErrorTypeServerError, ErrorTypeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
