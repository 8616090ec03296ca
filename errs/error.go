package errs

import (
	"context"
	"errors"
	"fmt"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
)

type Error interface {
	error
	Severity() Severity
	TimeStamp() time.Time
	Kind() Kind
	OperationPath() cu.Operations
	StackTrace() []Frame
	Unwrap() error
}

// E builds Error from any combination of {Severity, Kind, Operation(s), context, error, string}.
func E(args ...interface{}) Error {
	switch len(args) {
	case 0:
		panic("call to errs.E with no arguments")
	case 1:
		if e, ok := args[0].(Error); ok {
			return e
		}
	}
	e := newError()
	// the last on the list [args] wins
	for _, arg := range args {
		switch a := arg.(type) {
		case Severity:
			e.severity = a
		case Kind:
			e.kind = a
		case cu.Operation:
			e.ops = cu.Operations{Path: []cu.Operation{a}}
		case cu.Operations:
			e.ops = a
		case context.Context:
			e.ops = cu.GetContextOperations(a)
		case error:
			e.err = a
		case string:
			e.err = errors.New(a)
		}
	}
	e.frames = Trace(2)
	return e
}

type errorData struct {
	severity Severity
	kind     Kind
	ops      cu.Operations
	err      error
	ts       time.Time
	frames   []Frame
}

func newError() errorData {
	return errorData{
		severity: SeverityError,
		kind:     KindOther,
		ts:       time.Now(),
	}
}

func (e errorData) Error() string {
	msg := "unspecified error"
	if e.err != nil {
		msg = e.err.Error()
	}
	if len(e.ops.Path) > 0 {
		return fmt.Sprintf("[%s] %s <%s>: %s", e.severity, e.ops, e.kind, msg)
	}
	return fmt.Sprintf("[%s] <%s>: %s", e.severity, e.kind, msg)
}

func (e errorData) Severity() Severity {
	return e.severity
}

func (e errorData) TimeStamp() time.Time {
	return e.ts
}

func (e errorData) Kind() Kind {
	return e.kind
}

func (e errorData) OperationPath() cu.Operations {
	return e.ops
}

func (e errorData) StackTrace() []Frame {
	return e.frames
}

func (e errorData) Unwrap() error {
	return e.err
}
