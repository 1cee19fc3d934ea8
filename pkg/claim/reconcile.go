package claim

import (
	"EcoBite-Backend/domain"
)

// Reconciliation is the outcome of subtracting an approved claim from a
// post's remaining quantity.
type Reconciliation struct {
	// Applied is false when either quantity lacks a leading numeric
	// magnitude. Quantities are advisory free text, so an unparseable
	// value skips reconciliation instead of failing the approval.
	Applied     bool
	NewQuantity string
	Exhausted   bool
}

// ReconcileQuantity computes the post quantity left after an approved
// claim. Requests exceeding the remaining quantity clamp at zero and
// exhaust the post.
func ReconcileQuantity(postQuantity, requestedQuantity string) Reconciliation {
	postQty, ok := domain.QuantityMagnitude(postQuantity)
	if !ok {
		return Reconciliation{}
	}
	reqQty, ok := domain.QuantityMagnitude(requestedQuantity)
	if !ok {
		return Reconciliation{}
	}

	remaining := postQty - reqQty
	if remaining <= 0 {
		return Reconciliation{Applied: true, NewQuantity: "0", Exhausted: true}
	}
	return Reconciliation{Applied: true, NewQuantity: domain.FormatQuantity(remaining)}
}
