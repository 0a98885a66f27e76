package costing_test

import (
	"testing"

	"github.com/kruathong/pos_ledger_backend/internal/utils/costing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitCost(t *testing.T) {
	cost := costing.UnitCost(decimal.NewFromInt(1000), decimal.NewFromInt(100))
	assert.True(t, cost.Equal(decimal.NewFromInt(10)), "expected 10, got %s", cost)
}

func TestUnitCost_ZeroQuantityIsZeroCost(t *testing.T) {
	cost := costing.UnitCost(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, cost.IsZero())
}

func TestWeightedAverageUnitCost(t *testing.T) {
	// 100 units at 10.00 each, restocked with 50 units costing 600 in total:
	// (100*10 + 600) / 150 = 1600/150
	got := costing.WeightedAverageUnitCost(
		decimal.NewFromInt(100),
		decimal.NewFromInt(10),
		decimal.NewFromInt(50),
		decimal.NewFromInt(600),
	)
	want := decimal.NewFromInt(1600).Div(decimal.NewFromInt(150))
	assert.True(t, got.Equal(want), "expected %s, got %s", want, got)
}

func TestWeightedAverageUnitCost_FirstBatchIntoEmptyItem(t *testing.T) {
	got := costing.WeightedAverageUnitCost(
		decimal.Zero,
		decimal.Zero,
		decimal.NewFromInt(40),
		decimal.NewFromInt(100),
	)
	want := decimal.NewFromFloat(2.5)
	assert.True(t, got.Equal(want), "expected %s, got %s", want, got)
}

func TestWeightedAverageUnitCost_OrderIndependence(t *testing.T) {
	q1, c1 := decimal.NewFromInt(30), decimal.NewFromInt(450)
	q2, c2 := decimal.NewFromInt(70), decimal.NewFromInt(770)

	a := costing.WeightedAverageUnitCost(q1, costing.UnitCost(c1, q1), q2, c2)
	b := costing.WeightedAverageUnitCost(q2, costing.UnitCost(c2, q2), q1, c1)

	assert.True(t, a.Equal(b), "blend must not depend on batch order: %s vs %s", a, b)
}
