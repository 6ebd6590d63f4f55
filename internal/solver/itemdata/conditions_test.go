package itemdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicware/gearsolve/internal/solver/item"
)

func TestGetConditionsUnknownItemIsUnconstrained(t *testing.T) {
	b := GetConditions(999999)
	assert.Equal(t, DefaultMin(), b.Mins)
	assert.Equal(t, DefaultMax(), b.Maxs)
}

func TestGetConditionsReturnsRegisteredBounds(t *testing.T) {
	b := GetConditions(27293)
	require.Equal(t, 40, b.Mins.Block)
	require.Equal(t, 50, b.Maxs.Block)
}

func TestHasUnhandledConditionTrueForBlockBound(t *testing.T) {
	assert.True(t, HasUnhandledCondition(27293))
	assert.False(t, HasUnhandledCondition(item.ID(-2))) // synthetic dagger, no registered condition
}
