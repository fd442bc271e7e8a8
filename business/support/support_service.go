package support

import (
	"context"
	"errors"

	"viralWallet/business/user"
	"viralWallet/domain"
	"viralWallet/pkg/logger"
)

// SupportRepository contract interface
type SupportRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	FindByID(ctx context.Context, id uint) (domain.SupportTicket, error)
	FindAll(ctx context.Context) ([]domain.SupportTicket, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.SupportTicket, error)
	Close(ctx context.Context, id uint, reply string) error
}

type supportService struct {
	supportRepo SupportRepository
	userRepo    user.UserRepository
}

func NewSupportService(supportRepo SupportRepository, userRepo user.UserRepository) *supportService {
	return &supportService{
		supportRepo: supportRepo,
		userRepo:    userRepo,
	}
}

func (s *supportService) CreateTicket(ctx context.Context, caller domain.Caller, userID uint, subject, message string) (domain.SupportTicket, error) {
	if !caller.CanActFor(userID) {
		return domain.SupportTicket{}, domain.ErrUnauthorized
	}

	if subject == "" || message == "" {
		return domain.SupportTicket{}, errors.New("subject and message are required")
	}

	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("Ticket creator not found", err)
		return domain.SupportTicket{}, err
	}

	ticket := domain.SupportTicket{
		UserID:   owner.ID,
		UserName: owner.Name,
		Subject:  subject,
		Message:  message,
		Status:   domain.TicketStatusOpen,
	}

	if err := s.supportRepo.Create(ctx, &ticket); err != nil {
		logger.Error("Failed to create support ticket", err)
		return domain.SupportTicket{}, err
	}

	return ticket, nil
}

// CloseTicket attaches the admin's reply and closes the ticket. A ticket is
// closed exactly once; closing a closed ticket fails with ErrInvalidState.
func (s *supportService) CloseTicket(ctx context.Context, caller domain.Caller, ticketID uint, reply string) error {
	if !caller.IsAdmin() {
		return domain.ErrUnauthorized
	}

	if reply == "" {
		return errors.New("reply is required to close a ticket")
	}

	if _, err := s.supportRepo.FindByID(ctx, ticketID); err != nil {
		return err
	}

	if err := s.supportRepo.Close(ctx, ticketID, reply); err != nil {
		logger.Error("Failed to close support ticket", "ticket_id", ticketID, "error", err)
		return err
	}

	logger.Info("Support ticket closed", "ticket_id", ticketID)
	return nil
}

func (s *supportService) ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.SupportTicket, error) {
	if !caller.CanActFor(userID) {
		return nil, domain.ErrUnauthorized
	}

	return s.supportRepo.FindByUser(ctx, userID)
}

func (s *supportService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.SupportTicket, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	return s.supportRepo.FindAll(ctx)
}
