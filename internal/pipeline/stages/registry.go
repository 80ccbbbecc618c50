// Package stages provides stage definitions and execution-order validation
// for the candidate analysis pipeline.
package stages

import (
	"fmt"

	"github.com/hirelens/hirelens/internal/types"
)

// Stage categories.
const (
	CategoryParsing     = "parsing"
	CategoryEvaluation  = "evaluation"
	CategoryAggregation = "aggregation"
	CategoryExplanation = "explanation"
)

// Definition defines metadata for a pipeline stage
type Definition struct {
	Name         string
	Category     string
	Dependencies []string
}

// Registry holds all stage definitions
var Registry = map[string]Definition{
	types.StageParsing: {
		Name:         types.StageParsing,
		Category:     CategoryParsing,
		Dependencies: []string{},
	},
	types.StageFeatureExtraction: {
		Name:         types.StageFeatureExtraction,
		Category:     CategoryEvaluation,
		Dependencies: []string{types.StageParsing},
	},
	types.StageATSSimulation: {
		Name:         types.StageATSSimulation,
		Category:     CategoryEvaluation,
		Dependencies: []string{types.StageParsing, types.StageFeatureExtraction},
	},
	types.StageRecruiterEval: {
		Name:         types.StageRecruiterEval,
		Category:     CategoryEvaluation,
		Dependencies: []string{types.StageParsing, types.StageFeatureExtraction},
	},
	types.StageInterviewReadiness: {
		Name:         types.StageInterviewReadiness,
		Category:     CategoryEvaluation,
		Dependencies: []string{types.StageParsing, types.StageFeatureExtraction},
	},
	types.StageScoring: {
		Name:         types.StageScoring,
		Category:     CategoryAggregation,
		Dependencies: []string{types.StageATSSimulation, types.StageRecruiterEval, types.StageInterviewReadiness},
	},
	types.StageExplainability: {
		Name:         types.StageExplainability,
		Category:     CategoryExplanation,
		Dependencies: []string{types.StageScoring},
	},
}

// OrderError represents a stage scheduled before one of its dependencies
type OrderError struct {
	Stage   string
	Missing []string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("stage %s: missing dependencies: %v", e.Stage, e.Missing)
}

// Category returns the registry category for a stage, or "" for an unknown
// stage name.
func Category(name string) string {
	return Registry[name].Category
}

// ValidateOrder checks that every stage in the given execution order runs
// after all of its dependencies. Later stages tolerate failed dependencies
// at run time; the order itself must still be sound.
func ValidateOrder(order []string) error {
	seen := make(map[string]bool, len(order))

	for _, name := range order {
		def, ok := Registry[name]
		if !ok {
			return fmt.Errorf("unknown stage: %s", name)
		}

		var missing []string
		for _, dep := range def.Dependencies {
			if !seen[dep] {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			return &OrderError{Stage: name, Missing: missing}
		}

		seen[name] = true
	}

	return nil
}
