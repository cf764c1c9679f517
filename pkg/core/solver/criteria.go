package solver

// AreaViolation describes a hard constraint an area fails in a complete assignment
type AreaViolation struct {
	AreaIndex     int
	CriterionName string
	Description   string
}

// Criterion defines one constraint class applied during search.
// The four built-in constraint classes are derived from the instance's toggles;
// see CriteriaForInstance. Config.Extra adds criteria of your own.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// AllowsPlacement is checked before the worker is added to the area.
	// Returning false skips the area for this worker in the current state.
	AllowsPlacement(state *SearchState, worker, area int) bool

	// IsPartialValid is checked after the worker has been added to the area.
	// Returning false prunes the branch; the placement is undone by the search.
	IsPartialValid(state *SearchState, worker, area int) bool

	// ValidateComplete checks a complete assignment (every worker placed).
	// Any violation rejects the assignment.
	ValidateComplete(state *SearchState) []AreaViolation

	// Describe returns trace lines naming the constraint and its parameters
	Describe(inst *Instance, labels Labeler) []string
}

// constraintCriterion is a built-in criterion switched by one of the instance's toggles.
// It is inert on any instance where its toggle is off.
type constraintCriterion interface {
	Criterion
	enabled(toggles ConstraintToggles) bool
}

// builtinCriteria returns one criterion per constraint class, in evaluation order
func builtinCriteria() []constraintCriterion {
	return []constraintCriterion{
		NewSupervisorCoverageCriterion(),
		NewForbiddenPairCriterion(),
		NewPreferenceCriterion(),
		NewMinHeadcountCriterion(),
	}
}

// CriteriaForInstance returns the criteria for every constraint class enabled on the instance.
// Disabled constraint classes contribute no criterion.
func CriteriaForInstance(inst *Instance) []Criterion {
	toggles := inst.Toggles()

	var criteria []Criterion
	for _, c := range builtinCriteria() {
		if c.enabled(toggles) {
			criteria = append(criteria, c)
		}
	}
	return criteria
}

// activeCriteria returns the criteria a search enforces: the instance's enabled constraint
// classes followed by any extra criteria from the config
func activeCriteria(cfg Config) []Criterion {
	criteria := CriteriaForInstance(cfg.Instance)
	return append(criteria, cfg.Extra...)
}

func allowsPlacement(state *SearchState, worker, area int, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c.AllowsPlacement(state, worker, area) {
			return false
		}
	}
	return true
}

func isPartialValid(state *SearchState, worker, area int, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c.IsPartialValid(state, worker, area) {
			return false
		}
	}
	return true
}

// ValidateComplete runs every criterion's completeness check against the state
func ValidateComplete(state *SearchState, criteria []Criterion) []AreaViolation {
	var violations []AreaViolation
	for _, c := range criteria {
		violations = append(violations, c.ValidateComplete(state)...)
	}
	return violations
}

func joinLabels(indices []int, label func(int) string) []string {
	labels := make([]string, len(indices))
	for i, idx := range indices {
		labels[i] = label(idx)
	}
	return labels
}
