package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const callEventsTable = "call_events"

const (
	colID           = "id"
	colTimestamp    = "timestamp"
	colOperation    = "operation"
	colRequestID    = "request_id"
	colStatusCode   = "status_code"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

// callColumns is the column order scanCall expects.
var callColumns = []string{
	colID, colTimestamp, colOperation, colRequestID, colStatusCode,
	colLatencyMs, colSuccess, colErrorMessage, colRequestBody, colResponseBody,
}

// eventRepo implements EventRepo on top of the ent SQL dialect builders.
type eventRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendCall(ctx context.Context, data CallEventData) error {
	query, args := builder().Insert(callEventsTable).
		Columns(callColumns[1:]...).
		Values(
			time.Now().UTC(),
			data.Operation,
			data.RequestID,
			data.StatusCode,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save call event: %w", err)
	}
	return nil
}

// selectCalls builds the call listing query, newest first.
func selectCalls(opts QueryOpts) *entsql.Selector {
	sel := builder().Select(callColumns...).
		From(entsql.Table(callEventsTable)).
		OrderBy(entsql.Desc(colID))
	if opts.Operation != "" {
		sel.Where(entsql.EQ(colOperation, opts.Operation))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) QueryCalls(ctx context.Context, opts QueryOpts) ([]CallEvent, error) {
	query, args := selectCalls(opts).Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query call events: %w", err)
	}
	defer rows.Close()

	var events []CallEvent
	for rows.Next() {
		e, err := scanCall(&rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetCall(ctx context.Context, id int) (*CallEvent, error) {
	query, args := builder().Select(callColumns...).
		From(entsql.Table(callEventsTable)).
		Where(entsql.EQ(colID, id)).
		Limit(1).
		Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query call event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCall(&rows)
}

// selectUsage groups calls per operation. Failures are the call count
// minus the success sum.
func selectUsage() *entsql.Selector {
	return builder().Select(
		colOperation,
		entsql.Count("*"),
		entsql.Sum(colSuccess),
		entsql.Avg(colLatencyMs),
	).
		From(entsql.Table(callEventsTable)).
		GroupBy(colOperation).
		OrderBy(colOperation)
}

func (r *eventRepo) UsageByOperation(ctx context.Context) ([]OperationUsage, error) {
	query, args := selectUsage().Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var usage []OperationUsage
	for rows.Next() {
		var (
			u         OperationUsage
			successes int
			avg       float64
		)
		if err := rows.Scan(&u.Operation, &u.Calls, &successes, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.Failures = u.Calls - successes
		u.AvgLatencyMs = int64(avg)
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCall(s scanner) (*CallEvent, error) {
	var e CallEvent
	err := s.Scan(
		&e.ID,
		&e.Timestamp,
		&e.Operation,
		&e.RequestID,
		&e.StatusCode,
		&e.LatencyMs,
		&e.Success,
		&e.ErrorMessage,
		&e.RequestBody,
		&e.ResponseBody,
	)
	if err != nil {
		return nil, fmt.Errorf("scan call event: %w", err)
	}
	return &e, nil
}
