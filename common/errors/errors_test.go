package errors

import (
	"net/http"
	"reflect"
	"testing"
)

func TestDriftError_Error(t *testing.T) {
	type fields struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name: "errorType and message is filled out", fields: fields{errorType: ErrorTypeEmptyDataset, message: "error message"}, want: "error message",
		},
		{
			name: "message is empty", fields: fields{errorType: ErrorTypeEmptyDataset, message: ""}, want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CommonDriftError{
				errorType: tt.fields.errorType,
				message:   tt.fields.message,
			}
			if got := e.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDriftError(t *testing.T) {
	type args struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name string
		args args
		want CommonDriftError
	}{
		{
			name: "error type and message are filled out",
			args: args{errorType: ErrorTypeNoCommonFeatures, message: "error message"},
			want: CommonDriftError{errorType: ErrorTypeNoCommonFeatures, message: "error message"},
		},
		{
			name: "message is empty",
			args: args{errorType: ErrorTypeNoCommonFeatures, message: ""},
			want: CommonDriftError{errorType: ErrorTypeNoCommonFeatures, message: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCommonDriftError(tt.args.errorType, tt.args.message); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewCommonDriftError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDriftError_ConvertToHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		wantCode  int
	}{
		{"not found maps to 404", ErrorTypeNotFound, http.StatusNotFound},
		{"empty dataset maps to 400", ErrorTypeEmptyDataset, http.StatusBadRequest},
		{"no reference maps to 400", ErrorTypeNoReferenceLoaded, http.StatusBadRequest},
		{"no production data maps to 400", ErrorTypeNoProductionData, http.StatusBadRequest},
		{"no common features maps to 400", ErrorTypeNoCommonFeatures, http.StatusBadRequest},
		{"ingestion maps to 400", ErrorTypeIngestion, http.StatusBadRequest},
		{"persistence maps to 500", ErrorTypePersistence, http.StatusInternalServerError},
		{"unknown maps to 500", ErrorTypeUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := NewCommonDriftError(tt.errorType, "msg").ConvertToHTTPError()
			if httpErr.Code != tt.wantCode {
				t.Errorf("ConvertToHTTPError() code = %v, want %v", httpErr.Code, tt.wantCode)
			}
		})
	}
}
