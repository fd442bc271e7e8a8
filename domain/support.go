package domain

import "time"

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

type SupportTicket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	UserName  string    `gorm:"column:user_name;not null" json:"user_name"`
	Subject   string    `gorm:"column:subject;not null" json:"subject"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	Status    string    `gorm:"column:status;default:open" json:"status"`
	Reply     *string   `gorm:"column:reply" json:"reply,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}
