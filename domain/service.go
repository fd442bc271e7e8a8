package domain

import "time"

const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// Service is a purchasable catalog entry, e.g. "Instagram Followers"
// priced per 1000 units.
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Platform     string    `gorm:"column:platform;not null" json:"platform"`
	ServiceType  string    `gorm:"column:service_type;not null" json:"service_type"`
	PricePer1000 float64   `gorm:"column:price_per_1000;not null" json:"price_per_1000"`
	Min          int       `gorm:"column:min_quantity;not null" json:"min"`
	Max          int       `gorm:"column:max_quantity;not null" json:"max"`
	Status       string    `gorm:"column:status;default:active" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Service) TableName() string {
	return "services"
}
