package models

// Status is an order's delivery state. Transitions happen only through a
// manual edit by staff; there is no automatic progression.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
)

// Statuses lists the valid delivery states for select inputs.
func Statuses() []Status {
	return []Status{StatusPending, StatusOutForDelivery, StatusDelivered}
}

// ValidStatus reports whether s is one of the known delivery states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Order links one customer to one product. Deleting either referenced row
// nulls the reference here; the order row itself stays.
type Order struct {
	Base
	CustomerID *uint     `gorm:"index"`
	Customer   *Customer `gorm:"constraint:OnDelete:SET NULL"`
	ProductID  *uint     `gorm:"index"`
	Product    *Product  `gorm:"constraint:OnDelete:SET NULL"`
	Status     Status    `gorm:"type:varchar(32);not null;default:'Pending'"`
	Note       string    `gorm:"type:text"`
}
