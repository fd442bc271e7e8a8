package domain

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Email      string    `gorm:"column:email;unique;not null" json:"email"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	Password   string    `gorm:"column:password;not null" json:"-"`
	Balance    float64   `gorm:"column:balance;default:0" json:"balance"`
	Role       string    `gorm:"column:role;default:customer" json:"role"`
	Status     string    `gorm:"column:status;default:active" json:"status"`
	IsVerified bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Caller identifies who is invoking a business operation. Services check
// role and ownership against it instead of trusting route guards alone.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanActFor reports whether the caller may touch userID's resources.
func (c Caller) CanActFor(userID uint) bool {
	return c.IsAdmin() || c.UserID == userID
}
