package postgres

import (
	"context"
	"errors"

	"viralWallet/domain"

	"gorm.io/gorm"
)

type SupportRepository struct {
	DB *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{
		DB: db,
	}
}

func (r *SupportRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	return r.DB.WithContext(ctx).Create(ticket).Error
}

func (r *SupportRepository) FindByID(ctx context.Context, id uint) (domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	err := r.DB.WithContext(ctx).First(&ticket, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SupportTicket{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.SupportTicket{}, err
	}

	return ticket, nil
}

func (r *SupportRepository) FindAll(ctx context.Context) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *SupportRepository) FindByUser(ctx context.Context, userID uint) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

// Close attaches the reply and closes the ticket; only open tickets match.
func (r *SupportRepository) Close(ctx context.Context, id uint, reply string) error {
	row := r.DB.WithContext(ctx).
		Model(&domain.SupportTicket{}).
		Where("id = ? AND status = ?", id, domain.TicketStatusOpen).
		Updates(map[string]interface{}{
			"status": domain.TicketStatusClosed,
			"reply":  reply,
		})
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrInvalidState
	}

	return nil
}
