package model

// Problem describes a dispatch problem as written in a problem file.
// Workers and areas are identified by name here; the solver only ever sees indices
// assigned in file order.
type Problem struct {
	Name           string       `yaml:"name" validate:"required"`
	Areas          []AreaSpec   `yaml:"areas" validate:"required,min=1,unique=Name,dive"`
	Workers        []WorkerSpec `yaml:"workers" validate:"required,min=1,unique=Name,dive"`
	ForbiddenPairs [][]string   `yaml:"forbiddenPairs,omitempty" validate:"dive,len=2"`
	Constraints    *Constraints `yaml:"constraints,omitempty"`
	Overrides      []Override   `yaml:"overrides,omitempty" validate:"dive"`
}

// AreaSpec is a work area and its minimum headcount
type AreaSpec struct {
	Name         string `yaml:"name" validate:"required"`
	MinHeadcount int    `yaml:"minHeadcount" validate:"min=0"`
}

// WorkerSpec is a crew member
type WorkerSpec struct {
	Name       string `yaml:"name" validate:"required"`
	Supervisor bool   `yaml:"supervisor,omitempty"`

	// Areas lists the area names this worker may work in (empty means every area)
	Areas []string `yaml:"areas,omitempty"`
}

// Constraints toggles each constraint class. Omitted toggles are enabled.
type Constraints struct {
	Preference         *bool `yaml:"preference,omitempty"`
	ForbiddenPairs     *bool `yaml:"forbiddenPairs,omitempty"`
	SupervisorCoverage *bool `yaml:"supervisorCoverage,omitempty"`
	MinHeadcount       *bool `yaml:"minHeadcount,omitempty"`
}

// Override adjusts the problem on the days matched by its RRule
type Override struct {
	RRule string `yaml:"rrule" validate:"required"`

	// AbsentWorkers are removed from the crew on matching days
	AbsentWorkers []string `yaml:"absentWorkers,omitempty"`

	// MinHeadcount replaces the minimum headcount of the named areas
	MinHeadcount map[string]int `yaml:"minHeadcount,omitempty" validate:"dive,min=0"`

	// Constraints replaces individual toggles on matching days
	Constraints *Constraints `yaml:"constraints,omitempty"`
}

// WorkerIndex returns the index of the named worker, or -1
func (p *Problem) WorkerIndex(name string) int {
	for i, w := range p.Workers {
		if w.Name == name {
			return i
		}
	}
	return -1
}

// AreaIndex returns the index of the named area, or -1
func (p *Problem) AreaIndex(name string) int {
	for i, a := range p.Areas {
		if a.Name == name {
			return i
		}
	}
	return -1
}
