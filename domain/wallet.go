package domain

import "time"

const (
	WalletRequestPending  = "pending"
	WalletRequestApproved = "approved"
	WalletRequestDeclined = "declined"
)

// WalletRequest is a customer's claim of an external payment waiting for an
// admin to approve (credit the wallet) or decline. Approve/decline is
// terminal; ProcessedAt is set exactly when the request leaves pending.
type WalletRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Reference   string     `gorm:"column:reference;uniqueIndex;not null" json:"reference"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user_id"`
	UserName    string     `gorm:"column:user_name;not null" json:"user_name"`
	Amount      float64    `gorm:"column:amount;not null" json:"amount"`
	ProofImage  string     `gorm:"column:proof_image" json:"proof_image"`
	Status      string     `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

func (WalletRequest) TableName() string {
	return "wallet_requests"
}
