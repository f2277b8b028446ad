// Package errs defines the sentinel errors returned by wavepeek packages.
//
// Callers match them with errors.Is; packages wrap them with fmt.Errorf("...: %w", err)
// to add context such as the trace name or the offending operand.
package errs

import "errors"

// Trace and algebra errors.
var (
	// ErrEmptyTrace is returned by queries on a trace that holds no samples.
	ErrEmptyTrace = errors.New("trace has no samples")
	// ErrCombination is returned when an operand is neither a trace nor a numeric constant.
	ErrCombination = errors.New("trace can only be combined with another trace or a number")
	// ErrInvalidOperation is returned when an operator does not support the operand kinds.
	ErrInvalidOperation = errors.New("invalid operation for value kind")
	// ErrDivisionByZero is returned by Div, FloorDiv and Mod with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupportedValue is returned when a Go value cannot be converted to a sample value.
	ErrUnsupportedValue = errors.New("unsupported sample value type")
	// ErrAmbiguousUnitTime is returned when no consistent unit time can be inferred.
	// The caller must supply the unit time explicitly.
	ErrAmbiguousUnitTime = errors.New("unable to determine the unit time for the set of traces")
)

// Rendering errors.
var (
	ErrNoTraces         = errors.New("no traces with samples to render")
	ErrInvalidWindow    = errors.New("start time is after stop time")
	ErrInvalidUnitTime  = errors.New("unit time must be positive")
	ErrInvalidStep      = errors.New("table step must not be negative")
	ErrInvalidTolerance = errors.New("tolerance must be in [0, 0.5)")
)

// Registry errors.
var (
	ErrInvalidTraceName   = errors.New("invalid trace name")
	ErrDuplicateTraceName = errors.New("trace name already added")
	ErrTraceNotFound      = errors.New("trace not found")
	ErrNilTrace           = errors.New("trace is nil")
)

// Snapshot format errors.
var (
	ErrInvalidHeaderSize       = errors.New("invalid snapshot header size")
	ErrInvalidHeaderFlags      = errors.New("invalid snapshot header flags")
	ErrInvalidMagicNumber      = errors.New("invalid snapshot magic number")
	ErrInvalidIndexEntrySize   = errors.New("invalid snapshot index entry size")
	ErrInvalidIndexOffset      = errors.New("invalid snapshot index offset")
	ErrInvalidNamesPayload     = errors.New("invalid snapshot names payload")
	ErrInvalidTimestampPayload = errors.New("invalid snapshot timestamp payload")
	ErrInvalidValuePayload     = errors.New("invalid snapshot value payload")
	ErrSnapshotTooLarge        = errors.New("snapshot section exceeds format limits")
	ErrHashCollision           = errors.New("trace ID hash collision")
	ErrEncoderFinished         = errors.New("snapshot encoder already finished")
)
