// Package checks holds the alignment battery: named, read-only predicates over
// the platform database and the sequential runner that classifies each one as
// pass, fail, error or skip.
package checks

import (
	"context"
	"errors"
	"fmt"
)

// Querier is the read surface a check may use.
// *store.Source satisfies it.
type Querier interface {
	Count(ctx context.Context, query string, args ...any) (int64, error)
	Columns(ctx context.Context, table string) ([]string, error)
	HasTable(ctx context.Context, table string) (bool, error)
	Table(name string) string
}

// Check is one assertion-bearing query against the platform database.
type Check struct {
	Name        string
	Category    string
	Description string
	Run         func(ctx context.Context, q Querier) error
}

// ErrSkip marks a check that could not run.
var ErrSkip = errors.New("skipped")

// Skip returns an error that classifies the check as skipped.
func Skip(reason string) error {
	return fmt.Errorf("%w: %s", ErrSkip, reason)
}

// AssertionError is returned when a check ran but its threshold was not met.
type AssertionError struct {
	Message string
	Detail  string
}

func (e *AssertionError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + " (" + e.Detail + ")"
}

type number interface {
	~int | ~int64 | ~float64
}

func greater[T number](got, than T, msg string) error {
	if got > than {
		return nil
	}
	return &AssertionError{Message: msg, Detail: fmt.Sprintf("got %v, want > %v", got, than)}
}

func greaterOrEqual[T number](got, floor T, msg string) error {
	if got >= floor {
		return nil
	}
	return &AssertionError{Message: msg, Detail: fmt.Sprintf("got %v, want >= %v", got, floor)}
}

func isTrue(cond bool, msg string) error {
	if cond {
		return nil
	}
	return &AssertionError{Message: msg}
}

// firstErr returns the first failed assertion, in order.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
