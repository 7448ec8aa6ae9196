// Package net holds transport-neutral request helpers and the reply envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the request id on the context, "" when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
