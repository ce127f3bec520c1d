package parser

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/sqlerr"
)

// defaultParseWeight is the semaphore weight charged per in-flight parse.
const defaultParseWeight = 1

// AsyncParser runs statement parses under a bounded semaphore, so a
// caller fanning out across many goroutines can cap how many parses run
// concurrently without hand-rolling a worker pool.
type AsyncParser struct {
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// AsyncOption configures an AsyncParser.
type AsyncOption func(*AsyncParser)

// WithLogger attaches a zap logger used to record parse failures. The
// default is zap.NewNop(), so logging is opt-in.
func WithLogger(logger *zap.Logger) AsyncOption {
	return func(a *AsyncParser) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAsyncParser builds an AsyncParser that allows up to maxConcurrent
// parses to run at once. A non-positive maxConcurrent means unbounded.
func NewAsyncParser(maxConcurrent int64, opts ...AsyncOption) *AsyncParser {
	a := &AsyncParser{logger: zap.NewNop()}
	if maxConcurrent > 0 {
		a.sem = semaphore.NewWeighted(maxConcurrent)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ParseSelectAsync parses sql, blocking only long enough to acquire a
// slot in the concurrency limit or for ctx to be cancelled. Parsing
// itself runs synchronously once the slot is acquired — sqltoken's
// parser is not I/O bound, so there's nothing to gain from a dedicated
// goroutine once admission control has let the call through.
func (a *AsyncParser) ParseSelectAsync(ctx context.Context, sql string) (ast.Statement, error) {
	if a.sem != nil {
		if err := a.sem.Acquire(ctx, defaultParseWeight); err != nil {
			a.logger.Warn("parse admission cancelled", zap.Error(err))
			return nil, sqlerr.NewParseErrorf(0, "cancelled waiting for parse slot: %v", err)
		}
		defer a.sem.Release(defaultParseWeight)
	}
	if err := ctx.Err(); err != nil {
		a.logger.Warn("parse cancelled before start", zap.Error(err))
		return nil, sqlerr.NewParseErrorf(0, "cancelled before parse started: %v", err)
	}

	p := Get(sql)
	defer Put(p)

	stmt, err := p.Parse()
	if err != nil {
		a.logger.Debug("parse failed", zap.String("sql", sql), zap.Error(err))
		return nil, err
	}
	return stmt, nil
}

// ParseAllAsync parses every statement in sql under the same admission
// control as ParseSelectAsync.
func (a *AsyncParser) ParseAllAsync(ctx context.Context, sql string) ([]ast.Statement, error) {
	if a.sem != nil {
		if err := a.sem.Acquire(ctx, defaultParseWeight); err != nil {
			a.logger.Warn("parse admission cancelled", zap.Error(err))
			return nil, sqlerr.NewParseErrorf(0, "cancelled waiting for parse slot: %v", err)
		}
		defer a.sem.Release(defaultParseWeight)
	}
	if err := ctx.Err(); err != nil {
		a.logger.Warn("parse cancelled before start", zap.Error(err))
		return nil, sqlerr.NewParseErrorf(0, "cancelled before parse started: %v", err)
	}

	p := Get(sql)
	defer Put(p)

	stmts, err := p.ParseAll()
	if err != nil {
		a.logger.Debug("parse failed", zap.String("sql", sql), zap.Error(err))
		return nil, err
	}
	return stmts, nil
}
