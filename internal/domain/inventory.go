package domain

// TruckInventory tracks on-truck stock for one (truck, product) pair.
// Rows are created lazily on first reservation and mutated only by the
// reservation ledger. Invariant: 0 ≤ QtyReserved ≤ QtyFull.
type TruckInventory struct {
	TruckID     int
	ProductID   int
	QtyFull     int
	QtyEmpty    int
	QtyReserved int
}

// Available returns the quantity still free to reserve.
func (i *TruckInventory) Available() int { return i.QtyFull - i.QtyReserved }
