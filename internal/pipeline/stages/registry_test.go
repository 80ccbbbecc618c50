package stages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/types"
)

func TestValidateOrder_DefaultOrderIsValid(t *testing.T) {
	require.NoError(t, ValidateOrder(types.StageOrder))
}

func TestValidateOrder_ScoringBeforeEvaluatorsFails(t *testing.T) {
	order := []string{
		types.StageParsing,
		types.StageFeatureExtraction,
		types.StageScoring,
	}

	err := ValidateOrder(order)
	require.Error(t, err)

	var orderErr *OrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, types.StageScoring, orderErr.Stage)
	assert.Equal(t, []string{
		types.StageATSSimulation,
		types.StageRecruiterEval,
		types.StageInterviewReadiness,
	}, orderErr.Missing)
}

func TestValidateOrder_UnknownStage(t *testing.T) {
	err := ValidateOrder([]string{types.StageParsing, "llm_rewrite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage: llm_rewrite")
}

func TestValidateOrder_ExplainabilityNeedsScoring(t *testing.T) {
	order := []string{
		types.StageParsing,
		types.StageFeatureExtraction,
		types.StageATSSimulation,
		types.StageRecruiterEval,
		types.StageInterviewReadiness,
		types.StageExplainability,
	}

	err := ValidateOrder(order)
	require.Error(t, err)

	var orderErr *OrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, types.StageExplainability, orderErr.Stage)
	assert.Equal(t, []string{types.StageScoring}, orderErr.Missing)
}

func TestRegistry_EveryStageInOrderIsRegistered(t *testing.T) {
	for _, name := range types.StageOrder {
		def, ok := Registry[name]
		require.True(t, ok, "stage %s missing from registry", name)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, Registry, len(types.StageOrder))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, CategoryParsing, Category(types.StageParsing))
	assert.Equal(t, CategoryEvaluation, Category(types.StageATSSimulation))
	assert.Equal(t, CategoryAggregation, Category(types.StageScoring))
	assert.Equal(t, CategoryExplanation, Category(types.StageExplainability))
	assert.Equal(t, "", Category("render_latex"))
}
