package gateway

import "context"

type contextKey string

const (
	requestIDKey contextKey = "gateway_request_id"
	captureKey   contextKey = "gateway_capture"
)

// WithRequestID attaches a request id to ctx. The client sends it as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// requestIDFrom returns the request id on ctx, or a new one.
func requestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v
	}
	return NewRequestID()
}

// capture receives the raw response of a call for the call log.
type capture struct {
	statusCode int
	body       []byte
}

func withCapture(ctx context.Context, c *capture) context.Context {
	return context.WithValue(ctx, captureKey, c)
}

func recordResponse(ctx context.Context, status int, body []byte) {
	if c, ok := ctx.Value(captureKey).(*capture); ok {
		c.statusCode = status
		c.body = body
	}
}
