package pipecheck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rejected pipelines. Every error returned by Decode,
// Build and Parse wraps exactly one of these inside an *InputError.
var (
	// ErrMalformedInput is returned when the payload is not a JSON object of
	// the expected shape, or a record is missing a required field.
	ErrMalformedInput = errors.New("pipeline: malformed input")

	// ErrUnknownNodeReference is returned when an edge names a source or
	// target id that is not in the node set.
	ErrUnknownNodeReference = errors.New("pipeline: unknown node reference")

	// ErrDuplicateNodeID is returned when two node records share an id.
	ErrDuplicateNodeID = errors.New("pipeline: duplicate node id")

	// ErrTooLarge is returned when the node or edge count exceeds the
	// configured Limits.
	ErrTooLarge = errors.New("pipeline: input too large")
)

// InputError describes why a pipeline was rejected and where.
type InputError struct {
	Err    error  // one of the sentinel errors above
	Field  string // path of the offending field, e.g. "edges[2].target"
	ID     string // offending node id, if any
	Detail string
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " %q", e.ID)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *InputError) Unwrap() error { return e.Err }

// Kind returns the short name of the wrapped sentinel, e.g. "duplicate node id".
func (e *InputError) Kind() string {
	return strings.TrimPrefix(e.Err.Error(), "pipeline: ")
}
