package util

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Error wraps an underlying cause with a stable sentinel code, the same
// shape the rest of the module uses to classify failures without string
// matching.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

// WrapErrorf builds an Error carrying code, formatting msg from format/a.
func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// Sentinel error codes. The core never returns these directly from a
// search (failures stay in-band as Found=false / +Inf); they exist for
// the thin wiring layer that wants a real error.
var (
	ErrInvalidCoordinate = errors.New("coordinate out of range or NaN")
	ErrEmptyGraph        = errors.New("graph has no stops")
	ErrNoPath            = errors.New("no path between origin and destination")
)

// ReverseG returns a reversed copy of arr, leaving arr untouched.
func ReverseG[T any](arr []T) []T {
	out := make([]T, len(arr))
	copy(out, arr)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// StopConcurrentOperation reports whether ctx has already been cancelled,
// without blocking. Used as the cooperative-cancellation check at the top
// of each A* pop.
func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
