package postgres

import (
	"context"
	"errors"
	"time"

	"viralWallet/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository struct {
	DB *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{
		DB: db,
	}
}

func (r *WalletRepository) Create(ctx context.Context, request *domain.WalletRequest) error {
	return r.DB.WithContext(ctx).Create(request).Error
}

func (r *WalletRepository) FindByID(ctx context.Context, id uint) (domain.WalletRequest, error) {
	var request domain.WalletRequest
	err := r.DB.WithContext(ctx).First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.WalletRequest{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.WalletRequest{}, err
	}

	return request, nil
}

func (r *WalletRepository) FindAll(ctx context.Context) ([]domain.WalletRequest, error) {
	var requests []domain.WalletRequest
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *WalletRepository) FindByUser(ctx context.Context, userID uint) ([]domain.WalletRequest, error) {
	var requests []domain.WalletRequest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// Approve marks a pending request approved and credits the owner's balance
// in one transaction. An approved request whose credit failed to write can
// never be observed.
func (r *WalletRepository) Approve(ctx context.Context, id uint, processedAt time.Time) (domain.WalletRequest, error) {
	var request domain.WalletRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if request.Status != domain.WalletRequestPending {
			return domain.ErrInvalidState
		}

		err = tx.Model(&request).Updates(map[string]interface{}{
			"status":       domain.WalletRequestApproved,
			"processed_at": processedAt,
		}).Error
		if err != nil {
			return err
		}

		var user domain.User
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, request.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		return tx.Model(&user).Update("balance", user.Balance+request.Amount).Error
	})
	if err != nil {
		return domain.WalletRequest{}, err
	}

	request.Status = domain.WalletRequestApproved
	request.ProcessedAt = &processedAt
	return request, nil
}

// Decline marks a pending request declined. No balance effect.
func (r *WalletRepository) Decline(ctx context.Context, id uint, processedAt time.Time) (domain.WalletRequest, error) {
	var request domain.WalletRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if request.Status != domain.WalletRequestPending {
			return domain.ErrInvalidState
		}

		return tx.Model(&request).Updates(map[string]interface{}{
			"status":       domain.WalletRequestDeclined,
			"processed_at": processedAt,
		}).Error
	})
	if err != nil {
		return domain.WalletRequest{}, err
	}

	request.Status = domain.WalletRequestDeclined
	request.ProcessedAt = &processedAt
	return request, nil
}
