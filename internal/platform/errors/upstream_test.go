package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCode
		isNil  bool
	}{
		{200, ErrorCodeUnknown, true},
		{301, ErrorCodeUnknown, true},
		{404, ErrorCodeNotFound, false},
		{410, ErrorCodeNotFound, false},
		{429, ErrorCodeTooManyRequests, false},
		{408, ErrorCodeTimeout, false},
		{504, ErrorCodeTimeout, false},
		{503, ErrorCodeUnavailable, false},
		{403, ErrorCodeUpstream, false},
		{500, ErrorCodeUpstream, false},
	}
	for _, c := range cases {
		err := FromStatus(c.status, "get %s", "a.com")
		if c.isNil {
			if err != nil {
				t.Fatalf("FromStatus(%d) = %v, want nil", c.status, err)
			}
			continue
		}
		if CodeOf(err) != c.want {
			t.Fatalf("FromStatus(%d) code = %v, want %v", c.status, CodeOf(err), c.want)
		}
		if !strings.Contains(err.Error(), fmt.Sprintf("get a.com: upstream status %d", c.status)) {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestFromTransportf(t *testing.T) {
	if FromTransportf(nil, "x") != nil {
		t.Fatalf("nil must stay nil")
	}
	coded := NoRecipef("none")
	if FromTransportf(coded, "x") != coded {
		t.Fatalf("coded errors pass through")
	}
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline", context.DeadlineExceeded, ErrorCodeTimeout},
		{"net timeout", fmt.Errorf("read: %w", timeoutErr{}), ErrorCodeTimeout},
		{"canceled", context.Canceled, ErrorCodeUnavailable},
		{"other", stderrs.New("connection reset"), ErrorCodeUpstream},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := FromTransportf(c.err, "get %s", "a.com")
			if CodeOf(err) != c.want {
				t.Fatalf("code = %v, want %v", CodeOf(err), c.want)
			}
			if !stderrs.Is(err, c.err) {
				t.Fatalf("cause lost")
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"upstream", Upstreamf("x"), true},
		{"rate limited", FromStatus(429, "x"), true},
		{"unavailable", Unavailablef("x"), true},
		{"not found", NotFoundf("x"), false},
		{"no recipe", NoRecipef("x"), false},
		{"raw timeout", timeoutErr{}, true},
		{"raw other", stderrs.New("x"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", c.name, got, c.want)
		}
	}
}
