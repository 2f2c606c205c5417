package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}
	JSON(w, status, errorBody{Error: errorPayload{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
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
