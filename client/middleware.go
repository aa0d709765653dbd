package client

import (
	"context"
	"time"
)

// QueryEvent describes one query execution as seen by middleware.
type QueryEvent struct {
	SQL      string
	Params   any
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// Middleware intercepts query execution. Call next to continue the chain;
// after next returns, the event's Duration and Error fields are populated.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// observe runs exec through the middleware chain.
func (s *Session) observe(ctx context.Context, sqlText string, params any, exec func() error) error {
	if len(s.middlewares) == 0 {
		return exec()
	}

	event := &QueryEvent{
		SQL:    sqlText,
		Params: params,
		Start:  time.Now(),
	}

	var next func() error
	index := 0

	next = func() error {
		if index >= len(s.middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}

		mw := s.middlewares[index]
		index++
		return mw(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware logs each query before and after execution.
func LoggingMiddleware(logger func(format string, args ...any)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		logger("executing query: %s with params: %v", event.SQL, event.Params)
		err := next()
		if err != nil {
			logger("query failed: %v", err)
		} else {
			logger("query completed in %v", event.Duration)
		}
		return err
	}
}

// TimingMiddleware reports each query's execution time.
func TimingMiddleware(onTiming func(sql string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.SQL, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports failed queries.
func ErrorMiddleware(onError func(sql string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.SQL, err)
		}
		return err
	}
}
