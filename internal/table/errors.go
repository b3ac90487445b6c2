// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a structural parse failure. It aborts the load.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownUnit marks a half-life unit outside the conversion table.
	// The row is skipped and the load continues.
	ErrUnknownUnit = errors.New("unknown half-life unit")
)

// MalformedRecordError identifies the line and field that failed to decode.
type MalformedRecordError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("%s:%d: malformed record", e.File, e.Line)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %s %q", e.Field, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func malformed(line int, field, value string, err error) *MalformedRecordError {
	return &MalformedRecordError{Line: line, Field: field, Value: value, Err: err}
}
