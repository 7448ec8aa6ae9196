package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
)

// upstreamCode maps a status from a remote site to a code, ok is false for 2xx and 3xx
func upstreamCode(status int) (ErrorCode, bool) {
	switch {
	case status >= 200 && status < 400:
		return ErrorCodeUnknown, false
	case status == http.StatusNotFound, status == http.StatusGone:
		return ErrorCodeNotFound, true
	case status == http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests, true
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrorCodeTimeout, true
	case status == http.StatusServiceUnavailable:
		return ErrorCodeUnavailable, true
	}
	// bot walls and everything else
	return ErrorCodeUpstream, true
}

// FromStatus builds an error for a failed upstream status, nil for success
func FromStatus(status int, format string, a ...any) error {
	code, ok := upstreamCode(status)
	if !ok {
		return nil
	}
	return &Error{code: code, msg: fmt.Sprintf("%s: upstream status %d", fmt.Sprintf(format, a...), status)}
}

// FromTransportf classifies a dial, TLS, read or deadline failure
// Errors that already carry a code pass through unchanged
func FromTransportf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code := ErrorCodeUpstream
	switch {
	case stderrs.Is(err, context.DeadlineExceeded) || isNetTimeout(err):
		code = ErrorCodeTimeout
	case stderrs.Is(err, context.Canceled):
		code = ErrorCodeUnavailable
	}
	return Wrapf(err, code, format, a...)
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return stderrs.As(err, &ne) && ne.Timeout()
}

// IsRetryable reports whether a remote call failure is transient
// Local cancellation is never retried
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if e, ok := As(err); ok {
		switch e.code {
		case ErrorCodeUnavailable, ErrorCodeTooManyRequests, ErrorCodeUpstream, ErrorCodeTimeout:
			return true
		}
		return false
	}
	return isNetTimeout(err)
}
