package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiegfriedLudwig/is-constructs/table"
)

func TestGoldIdentity(t *testing.T) {
	members := []PoolMember{
		{Pool: "p1", Member: "a"},
		{Pool: "p1", Member: "b"},
		{Pool: "p2", Member: "c"},
	}

	gold := GoldIdentity(members, nil)

	assert.Equal(t, []string{"a", "b", "c"}, gold.IDs)
	assert.Equal(t, float64(1), gold.Get("a", "b"))
	assert.Equal(t, float64(1), gold.Get("b", "a"))
	assert.Equal(t, float64(0), gold.Get("a", "c"))
	for _, id := range gold.IDs {
		assert.Equal(t, float64(1), gold.Get(id, id))
	}
}

func TestGoldIdentityFixedIDs(t *testing.T) {
	members := []PoolMember{
		{Pool: "p1", Member: "a"},
		{Pool: "p1", Member: "z"}, // not in the labeling, skipped
	}

	gold := GoldIdentity(members, []string{"a", "b"})

	assert.Equal(t, 2, gold.Len())
	assert.Equal(t, float64(0), gold.Get("a", "b"))
	assert.Equal(t, float64(1), gold.Get("a", "a"))
}

func TestEvaluatePerfectRanking(t *testing.T) {
	_, _, auc := EvaluateFlat(
		[]float64{0.9, 0.8, 0.2, 0.1},
		[]float64{1, 1, 0, 0},
	)

	assert.InDelta(t, 1.0, auc, 1e-9)
}

func TestEvaluateReversedRanking(t *testing.T) {
	_, _, auc := EvaluateFlat(
		[]float64{0.1, 0.2, 0.8, 0.9},
		[]float64{1, 1, 0, 0},
	)

	assert.InDelta(t, 0.0, auc, 1e-9)
}

func TestEvaluateSingleClass(t *testing.T) {
	_, _, auc := EvaluateFlat(
		[]float64{0.9, 0.1},
		[]float64{1, 1},
	)

	assert.True(t, math.IsNaN(auc))
}

func TestEvaluateSingleClassTable(t *testing.T) {
	sim := table.New([]string{"a", "b", "c"})
	sim.M.Set(0, 1, 0.9)
	sim.M.Set(0, 2, 0.3)
	sim.M.Set(1, 2, 0.5)

	// no pool groups any pair together, so every off-diagonal label is 0
	gold := GoldIdentity(nil, []string{"a", "b", "c"})

	_, _, auc, err := Evaluate(sim, gold)

	assert.Nil(t, err)
	assert.True(t, math.IsNaN(auc))
}

func TestEvaluateTables(t *testing.T) {
	sim := table.New([]string{"a", "b", "c"})
	sim.M.Set(0, 1, 0.9)
	sim.M.Set(0, 2, 0.1)
	sim.M.Set(1, 2, 0.2)

	gold := GoldIdentity([]PoolMember{
		{Pool: "p", Member: "a"},
		{Pool: "p", Member: "b"},
	}, []string{"a", "b", "c"})

	_, _, auc, err := Evaluate(sim, gold)

	assert.Nil(t, err)
	assert.InDelta(t, 1.0, auc, 1e-9)
}

func TestEvaluateShapeMismatch(t *testing.T) {
	sim := table.New([]string{"a", "b"})
	gold := table.New([]string{"a", "b", "c"})

	_, _, _, err := Evaluate(sim, gold)

	assert.NotNil(t, err)
}
