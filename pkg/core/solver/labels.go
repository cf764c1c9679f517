package solver

import "fmt"

// Labeler renders worker and area indices for traces.
// The presentation layer supplies display names; the solver never depends on them.
type Labeler interface {
	WorkerLabel(worker int) string
	AreaLabel(area int) string
}

// IndexLabels labels workers as W<i> and areas as A<i>
type IndexLabels struct{}

func (IndexLabels) WorkerLabel(worker int) string {
	return fmt.Sprintf("W%d", worker)
}

func (IndexLabels) AreaLabel(area int) string {
	return fmt.Sprintf("A%d", area)
}
