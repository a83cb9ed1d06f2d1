package enum

// DeliveryType is who carries a dispatched order to the retailer.
type DeliveryType string

const (
	DeliveryTypeStaff   DeliveryType = "staff"
	DeliveryTypePartner DeliveryType = "partner"
	DeliveryTypePickup  DeliveryType = "pickup"
)

func (t DeliveryType) IsValid() bool {
	switch t {
	case DeliveryTypeStaff, DeliveryTypePartner, DeliveryTypePickup:
		return true
	}
	return false
}
