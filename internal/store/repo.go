package store

import (
	"context"
	"time"
)

// QueryOpts configures call event queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Operation string // filter by operation ("" = all)
}

// CallEventData captures a single gateway call.
type CallEventData struct {
	Operation    string
	RequestID    string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// CallEvent is a stored gateway call.
type CallEvent struct {
	ID        int
	Timestamp time.Time
	CallEventData
}

// OperationUsage aggregates calls per gateway operation.
type OperationUsage struct {
	Operation    string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the call log.
type EventRepo interface {
	// AppendCall records a gateway call.
	AppendCall(ctx context.Context, data CallEventData) error

	// QueryCalls returns calls, newest first.
	QueryCalls(ctx context.Context, opts QueryOpts) ([]CallEvent, error)

	// GetCall returns one call by id, or nil if it does not exist.
	GetCall(ctx context.Context, id int) (*CallEvent, error)

	// UsageByOperation aggregates call counts and latency per operation.
	UsageByOperation(ctx context.Context) ([]OperationUsage, error)
}
