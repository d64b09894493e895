package models

import "golang.org/x/crypto/bcrypt"

// Role decides which routes a signed-in user may open.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User is an authentication identity. The role lives here, never on the
// Customer record.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(16);not null;default:'customer'"`
}

// HashPassword turns a plain password into a bcrypt hash.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether pw matches the stored hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
