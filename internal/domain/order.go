package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// A customer order as seen by the allocation core. Lines are owned by order
// entry; this core only mutates the denormalized assignment fields, for which
// the TruckAllocation row remains the source of truth.
type Order struct {
	OrderID         int
	CustomerName    string
	DeliveryAddress string
	TotalAmount     decimal.Decimal
	AssignedTruckID *int
	DeliveryDate    *time.Time
	Lines           []OrderLine
}

// A single order line referencing a product variant. Immutable once created.
type OrderLine struct {
	ProductID int
	Quantity  int
}
