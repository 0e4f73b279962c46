package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every database round trip started from a handler
var QueryTimeout = 30 * time.Second

// WithQueryTimeout derives a context carrying the standard query deadline
func WithQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QueryTimeout)
}
