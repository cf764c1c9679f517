package solver

import "errors"

var (
	// ErrInvalidInstance is returned when an instance cannot be built from its input
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrStepBudgetExceeded is returned when the search used up its step budget
	ErrStepBudgetExceeded = errors.New("search step budget exceeded")

	// ErrSearchCancelled is returned when the context was cancelled or timed out during search
	ErrSearchCancelled = errors.New("search cancelled")
)
