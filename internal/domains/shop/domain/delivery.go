package domain

// DeliveryStatus enumerates delivery progression.
type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMP"
)

// Delivery is exclusively owned by one order. OrderID is a navigational
// back-reference only; lifecycle always flows from the order.
type Delivery struct {
	ID      int64
	OrderID int64
	Address Address
	Status  DeliveryStatus
}

// NewDelivery constructs a delivery headed to the given address.
func NewDelivery(address Address) *Delivery {
	return &Delivery{Address: address, Status: DeliveryReady}
}

// Complete marks the delivery as done, which freezes the owning order.
func (d *Delivery) Complete() {
	d.Status = DeliveryCompleted
}
