package postgres

import (
	"context"
	"errors"

	"viralWallet/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Update writes profile columns only. Balance moves through Debit/Credit,
// status through UpdateStatus; a stale struct handed in here must never
// write those back.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	row := r.DB.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", user.ID).
		Select("name", "phone", "email", "password").
		Updates(user)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	row := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("status", status)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	row := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_verified", isVerified)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepository) GetBalance(ctx context.Context, id uint) (float64, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	return user.Balance, nil
}

// Debit subtracts amount from the user's balance inside a transaction with a
// row lock, so two simultaneous debits cannot both read the same balance.
// Returns the new balance.
func (r *UserRepository) Debit(ctx context.Context, id uint, amount float64) (float64, error) {
	var newBalance float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if user.Balance < amount {
			return domain.ErrInsufficientFunds
		}

		newBalance = user.Balance - amount
		return tx.Model(&user).Update("balance", newBalance).Error
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Credit adds amount to the user's balance under the same locking
// discipline as Debit. Returns the new balance.
func (r *UserRepository) Credit(ctx context.Context, id uint, amount float64) (float64, error) {
	var newBalance float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		newBalance = user.Balance + amount
		return tx.Model(&user).Update("balance", newBalance).Error
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
