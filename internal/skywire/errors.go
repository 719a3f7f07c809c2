package skywire

import (
	"fmt"
	"sync/atomic"
)

// ErrorKind identifies one of the error categories the pipeline can
// report. Every per-frame failure is one of these; ConfigError is the
// only kind that can prevent pipeline construction.
type ErrorKind int

const (
	// ErrNone is the zero value; never returned from a failing call.
	ErrNone ErrorKind = iota
	// ErrConfig signals invalid construction parameters.
	ErrConfig
	// ErrFrameSyncLost signals the ASM correlator failed to lock.
	ErrFrameSyncLost
	// ErrDecodeUncorrectable signals the LDPC decoder hit max_iter
	// without satisfying the parity syndrome.
	ErrDecodeUncorrectable
	// ErrCrcMismatch signals the post-decode CRC check failed.
	ErrCrcMismatch
	// ErrTruncatedInput signals fewer samples than one frame needs.
	ErrTruncatedInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConfig:
		return "ConfigError"
	case ErrFrameSyncLost:
		return "FrameSyncLost"
	case ErrDecodeUncorrectable:
		return "DecodeUncorrectable"
	case ErrCrcMismatch:
		return "CrcMismatch"
	case ErrTruncatedInput:
		return "TruncatedInput"
	default:
		return "None"
	}
}

// PipelineError is the error type returned by every fallible operation
// in this package. Kind is meant to be inspected with errors.As.
type PipelineError struct {
	Kind ErrorKind
	Msg  string
}

func (e *PipelineError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newErr(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrorCounters tallies per-kind failures for observability. Safe for
// concurrent use since a collaborator may inspect them from another
// goroutine while the orchestrator keeps running.
type ErrorCounters struct {
	configErrors        atomic.Uint64
	frameSyncLost       atomic.Uint64
	decodeUncorrectable atomic.Uint64
	crcMismatch         atomic.Uint64
	truncatedInput      atomic.Uint64
}

func (c *ErrorCounters) record(kind ErrorKind) {
	switch kind {
	case ErrConfig:
		c.configErrors.Add(1)
	case ErrFrameSyncLost:
		c.frameSyncLost.Add(1)
	case ErrDecodeUncorrectable:
		c.decodeUncorrectable.Add(1)
	case ErrCrcMismatch:
		c.crcMismatch.Add(1)
	case ErrTruncatedInput:
		c.truncatedInput.Add(1)
	}
}

// Snapshot returns a point-in-time copy of every counter, keyed by kind.
func (c *ErrorCounters) Snapshot() map[ErrorKind]uint64 {
	return map[ErrorKind]uint64{
		ErrConfig:              c.configErrors.Load(),
		ErrFrameSyncLost:       c.frameSyncLost.Load(),
		ErrDecodeUncorrectable: c.decodeUncorrectable.Load(),
		ErrCrcMismatch:         c.crcMismatch.Load(),
		ErrTruncatedInput:      c.truncatedInput.Load(),
	}
}
