package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackGeneratorIsDeterministicPerLevel(t *testing.T) {
	generator := NewFallbackGenerator()
	ctx := context.Background()

	for _, level := range []string{"LOW", "MEDIUM", "HIGH"} {
		first, err := generator.Generate(ctx, Input{StudentCode: "S-001", RiskLevel: level})
		require.NoError(t, err)
		second, err := generator.Generate(ctx, Input{StudentCode: "S-002", RiskLevel: level})
		require.NoError(t, err)

		require.Equal(t, level, first.Priority)
		require.Equal(t, first, second)
		require.Equal(t, "fallback", first.Model)
		require.NotEmpty(t, first.Actions)
		for _, action := range first.Actions {
			require.NotEmpty(t, action.Type)
			require.NotEmpty(t, action.Owner)
			require.NotEmpty(t, action.Rationale)
		}
	}
}

func TestFallbackGeneratorDefaultsToLow(t *testing.T) {
	generator := NewFallbackGenerator()

	result, err := generator.Generate(context.Background(), Input{StudentCode: "S-003"})
	require.NoError(t, err)
	require.Equal(t, "LOW", result.Priority)
	require.Len(t, result.Actions, 1)
}
