package domain

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
)

// Order snapshots the service name and platform at purchase time so later
// catalog edits never rewrite order history.
type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Reference   string     `gorm:"column:reference;uniqueIndex;not null" json:"reference"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user_id"`
	ServiceID   uint       `gorm:"column:service_id;not null" json:"service_id"`
	ServiceName string     `gorm:"column:service_name;not null" json:"service_name"`
	Platform    string     `gorm:"column:platform;not null" json:"platform"`
	Quantity    int        `gorm:"column:quantity;not null" json:"quantity"`
	Price       float64    `gorm:"column:price;not null" json:"price"`
	Link        string     `gorm:"column:link;not null" json:"link"`
	Status      string     `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// orderTransitions is the allowed status edge set. Terminal states have no
// outgoing edges; pending must pass through processing before resolving.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusFailed},
}

// CanTransitionOrder reports whether from -> to is a legal order status edge.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusFailed
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}
