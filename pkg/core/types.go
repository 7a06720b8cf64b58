/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the augmenter: sampling statistics and the errors raised by
construction and rejection sampling.
*/

package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrExhaustedSampleSpace is matched by ExhaustedSampleSpaceError.
	ErrExhaustedSampleSpace = errors.New("exhausted sample space")
	// ErrNoDomain is returned when a strategy needs a domain and none was given.
	ErrNoDomain = errors.New("augmentation strategy requires a domain")
	// ErrInvalidCount is returned for a negative sample count.
	ErrInvalidCount = errors.New("sample count must not be negative")
)

// ExhaustedSampleSpaceError reports that the attempt budget ran out before
// enough novel samples were drawn.
type ExhaustedSampleSpaceError struct {
	Requested int
	Accepted  int
	Attempts  int
}

func (e *ExhaustedSampleSpaceError) Error() string {
	return fmt.Sprintf("%v: accepted %d of %d samples after %d attempts",
		ErrExhaustedSampleSpace, e.Accepted, e.Requested, e.Attempts)
}

func (e *ExhaustedSampleSpaceError) Unwrap() error {
	return ErrExhaustedSampleSpace
}

// RunStats describes the most recent call to Sample.
type RunStats struct {
	Requested  int           `json:"requested"`
	Attempts   int           `json:"attempts"`   // Draws from the grammar
	Accepted   int           `json:"accepted"`   // Novel samples returned
	Duplicates int           `json:"duplicates"` // Draws rejected as already seen
	Failures   int           `json:"failures"`   // Draws that hit the depth bound
	Duration   time.Duration `json:"duration"`
}

// AcceptanceRate returns Accepted / Attempts.
func (s RunStats) AcceptanceRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}
