package net

import (
	"net/http"

	perr "recipescraper/internal/platform/errors"
)

// Wire is the envelope every transport reply is wrapped in
// Success mirrors the outcome for clients that only look at one flag
type Wire struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a non-error envelope, success follows the status class
func Reply(status int, data any, reqID string) Wire {
	return Wire{
		Success:    status < http.StatusBadRequest,
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Error builds an error envelope and the status it maps to
// a nil error is a 200 with no data
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Reply(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
