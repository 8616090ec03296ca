package ctxutils

import (
	"context"
	"strings"
)

// Operation is one named step of processing, e.g. "1.loader".
type Operation string

// Operations is the path of nested operations accumulated in a context.
type Operations struct {
	Path []Operation
}

func (ops Operations) String() string {
	ss := make([]string, 0, len(ops.Path))
	for _, op := range ops.Path {
		ss = append(ss, string(op))
	}
	return strings.Join(ss, "/")
}

type ctxKey int

const operationsKey ctxKey = iota

type CtxOption func(ops Operations) Operations

// SetContextOperation resets operation path to a single root operation.
func SetContextOperation(op Operation) CtxOption {
	return func(Operations) Operations {
		return Operations{Path: []Operation{op}}
	}
}

// AddContextOperation appends operation to the current path.
func AddContextOperation(op Operation) CtxOption {
	return func(ops Operations) Operations {
		path := make([]Operation, 0, len(ops.Path)+1)
		path = append(path, ops.Path...)
		return Operations{Path: append(path, op)}
	}
}

func GetContextOperations(ctx context.Context) Operations {
	if ctx == nil {
		return Operations{}
	}
	if ops, ok := ctx.Value(operationsKey).(Operations); ok {
		return ops
	}
	return Operations{}
}

func BuildContext(ctx context.Context, opts ...CtxOption) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ops := GetContextOperations(ctx)
	for _, opt := range opts {
		ops = opt(ops)
	}
	return context.WithValue(ctx, operationsKey, ops)
}
