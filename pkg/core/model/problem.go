package model

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadProblemFromPath loads and validates a problem file
func LoadProblemFromPath(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	return ParseProblem(data)
}

// ParseProblem parses and validates a YAML problem description
func ParseProblem(data []byte) (*Problem, error) {
	var problem Problem
	if err := yaml.Unmarshal(data, &problem); err != nil {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}

	if err := ValidateProblem(&problem); err != nil {
		return nil, err
	}

	return &problem, nil
}

// ValidateProblem validates the problem structure, override rrules and override references.
//
// Forbidden pairs and worker areas naming unknown workers or areas are NOT rejected here;
// they are dropped (and reported) when the instance is built.
// Overrides are stricter because they are authored configuration.
func ValidateProblem(problem *Problem) error {
	if err := validate.Struct(problem); err != nil {
		return fmt.Errorf("problem validation failed: %w", err)
	}

	for i, override := range problem.Overrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in overrides[%d]: %w", i, err)
		}
		for _, name := range override.AbsentWorkers {
			if problem.WorkerIndex(name) < 0 {
				return fmt.Errorf("overrides[%d] references unknown worker %q", i, name)
			}
		}
		for name := range override.MinHeadcount {
			if problem.AreaIndex(name) < 0 {
				return fmt.Errorf("overrides[%d] references unknown area %q", i, name)
			}
		}
	}

	return nil
}
