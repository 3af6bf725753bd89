package utils

import (
	"context"
	"strings"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces/mocks"
	mocks2 "github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

type DriftMockUtils struct {
	AppService  *mocks.ApplicationService
	AppSettings map[string]string
}

func NewApplicationServiceMock(appSettings map[string]string) *DriftMockUtils {
	driftMockUtils := new(DriftMockUtils)

	mockLogger := &mocks2.LoggingClient{}
	mockLogger.On("Debugf", mock.Anything).Return()
	mockLogger.On("Debugf", mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything).Return()
	mockLogger.On("Debug", mock.Anything).Return()
	mockLogger.On("Error", mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", mock.Anything).Return()
	mockLogger.On("Debug", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Debugf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Info", mock.Anything).Return()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Trace", mock.Anything).Return()
	mockLogger.On("Tracef", mock.Anything, mock.Anything, mock.Anything).Return()

	mockAppService := &mocks.ApplicationService{}
	driftMockUtils.AppService = mockAppService
	mockAppService.On("LoggingClient").Return(mockLogger)
	mockAppService.On("AppContext").Return(context.Background())
	mockAppService.On("AddCustomRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockAppService.On("AddCustomRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	if appSettings == nil {
		driftMockUtils.AppSettings = make(map[string]string)
		driftMockUtils.AppService.On("GetAppSettingStrings", mock.Anything).Return([]string{}, errors.New("not found"))
	} else {
		driftMockUtils.AppSettings = appSettings
		for k, v := range appSettings {
			if strings.HasPrefix(v, "ERR:") {
				e := errors.New(v)
				driftMockUtils.AppService.On("GetAppSetting", k).Return("", e)
				driftMockUtils.AppService.On("GetAppSettingStrings", k).Return([]string{}, e)
			} else {
				driftMockUtils.AppService.On("GetAppSetting", k).Return(v, nil)
				driftMockUtils.AppService.On("GetAppSettingStrings", k).Return([]string{v}, nil)
			}
		}
	}

	driftMockUtils.AppService.On("GetAppSetting", mock.Anything).Return("", errors.New("setting not found"))
	driftMockUtils.AppService.On("GetAppSettingStrings", mock.Anything).Return([]string{}, errors.New("setting not found"))

	return driftMockUtils
}
