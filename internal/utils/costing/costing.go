package costing

import (
	"github.com/shopspring/decimal"
)

// UnitCost divides a total acquisition cost by a quantity, treating a zero or
// negative quantity as zero cost. Callers must not average unit costs
// directly; cost is always derived from total value over total quantity.
func UnitCost(totalCost, quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalCost.Div(quantity)
}

// WeightedAverageUnitCost blends an existing holding with a new batch:
//
//	(oldQty*oldUnitCost + batchCost) / (oldQty + addedQty)
//
// The numerator is computed from total value, not by averaging unit costs,
// so the result does not depend on the order mixed-price batches arrive in.
func WeightedAverageUnitCost(oldQuantity, oldUnitCost, addedQuantity, batchCost decimal.Decimal) decimal.Decimal {
	newTotalValue := oldQuantity.Mul(oldUnitCost).Add(batchCost)
	newTotalQuantity := oldQuantity.Add(addedQuantity)
	return UnitCost(newTotalValue, newTotalQuantity)
}
