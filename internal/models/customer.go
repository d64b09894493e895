package models

// Customer is the CRM record for an end-customer. It may be linked 1:1 to a
// login account, or exist on its own when created by staff. Deleting the
// linked user deletes the customer with it.
type Customer struct {
	Base
	UserID     *uint `gorm:"uniqueIndex"`
	User       *User `gorm:"constraint:OnDelete:CASCADE"`
	Name       string
	Phone      string
	Email      string
	ProfilePic string // public path, e.g. "/uploads/ab12.png"
}
