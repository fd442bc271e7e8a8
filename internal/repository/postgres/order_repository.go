package postgres

import (
	"context"
	"errors"
	"time"

	"viralWallet/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

// CreateWithDebit inserts the order and debits its price from the owner's
// balance in one transaction. Either both happen or neither: a failed debit
// leaves no order row behind.
func (r *OrderRepository) CreateWithDebit(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, order.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if user.Balance < order.Price {
			return domain.ErrInsufficientFunds
		}

		if err := tx.Model(&user).Update("balance", user.Balance-order.Price).Error; err != nil {
			return err
		}

		return tx.Create(order).Error
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// FindStuckProcessing returns orders still in processing created at or
// before cutoff.
func (r *OrderRepository) FindStuckProcessing(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("status = ? AND created_at <= ?", domain.OrderStatusProcessing, cutoff).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus moves the order from one status to another. The WHERE guard
// on the previous status makes racing transitions lose cleanly: the second
// writer matches zero rows and gets ErrInvalidState instead of re-applying.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, from, to string, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": to}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	row := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrInvalidState
	}

	return nil
}
