package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"veridia/internal/common"
)

// ErrorCollector counts error responses by code. Wired to the metrics
// collector at startup.
type ErrorCollector interface {
	RecordError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

func JSONWithMessage(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, envelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, err error) {
	body := errorBody{Code: common.CodeOf(err), Message: "internal error"}
	var domainErr *common.Error
	if errors.As(err, &domainErr) {
		body.Message = domainErr.Message
		body.Details = domainErr.Fields
	}
	if errorCollector != nil {
		errorCollector.RecordError(string(body.Code))
	}
	write(w, statusFor(body.Code), envelope{Success: false, Error: &body})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized, common.CodeInvalidCredentials, common.CodeInvalidToken:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
