package wallet

import (
	"context"
	"fmt"
	"time"

	"viralWallet/business/user"
	"viralWallet/domain"
	"viralWallet/pkg/logger"
	"viralWallet/pkg/metrics"

	"github.com/google/uuid"
)

// WalletRepository contract interface. Approve must credit the user's
// balance and mark the request in one transaction.
type WalletRepository interface {
	Create(ctx context.Context, request *domain.WalletRequest) error
	FindByID(ctx context.Context, id uint) (domain.WalletRequest, error)
	FindAll(ctx context.Context) ([]domain.WalletRequest, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.WalletRequest, error)
	Approve(ctx context.Context, id uint, processedAt time.Time) (domain.WalletRequest, error)
	Decline(ctx context.Context, id uint, processedAt time.Time) (domain.WalletRequest, error)
}

type walletService struct {
	walletRepo WalletRepository
	userRepo   user.UserRepository
	minTopUp   float64
	now        func() time.Time
}

func NewWalletService(walletRepo WalletRepository, userRepo user.UserRepository, minTopUp float64) *walletService {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		minTopUp:   minTopUp,
		now:        time.Now,
	}
}

// CreateRequest records a customer's claim of an external payment. The
// user's name is snapshotted so the admin review screen survives later
// profile edits.
func (s *walletService) CreateRequest(ctx context.Context, caller domain.Caller, userID uint, amount float64, proofImage string) (domain.WalletRequest, error) {
	if !caller.CanActFor(userID) {
		return domain.WalletRequest{}, domain.ErrUnauthorized
	}

	if amount < s.minTopUp {
		return domain.WalletRequest{}, fmt.Errorf("%w: minimum is %.2f", domain.ErrBelowMinimum, s.minTopUp)
	}

	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("Top-up requester not found", err)
		return domain.WalletRequest{}, err
	}

	request := domain.WalletRequest{
		Reference:  uuid.NewString(),
		UserID:     owner.ID,
		UserName:   owner.Name,
		Amount:     amount,
		ProofImage: proofImage,
		Status:     domain.WalletRequestPending,
		CreatedAt:  s.now(),
	}

	if err := s.walletRepo.Create(ctx, &request); err != nil {
		logger.Error("Failed to create wallet request", err)
		return domain.WalletRequest{}, err
	}

	logger.Info("Wallet request created", "request_id", request.ID, "user_id", owner.ID, "amount", amount)
	return request, nil
}

// Approve credits the requester's wallet and marks the request approved.
// Only pending requests can be approved; approve/decline is terminal.
func (s *walletService) Approve(ctx context.Context, caller domain.Caller, requestID uint) (domain.WalletRequest, error) {
	if !caller.IsAdmin() {
		return domain.WalletRequest{}, domain.ErrUnauthorized
	}

	request, err := s.walletRepo.Approve(ctx, requestID, s.now())
	if err != nil {
		logger.Error("Failed to approve wallet request", "request_id", requestID, "error", err)
		return domain.WalletRequest{}, err
	}

	metrics.WalletRequestsProcessed.WithLabelValues("approved").Inc()
	logger.Info("Wallet request approved", "request_id", request.ID, "user_id", request.UserID, "amount", request.Amount)
	return request, nil
}

// Decline marks the request declined with no balance effect.
func (s *walletService) Decline(ctx context.Context, caller domain.Caller, requestID uint) (domain.WalletRequest, error) {
	if !caller.IsAdmin() {
		return domain.WalletRequest{}, domain.ErrUnauthorized
	}

	request, err := s.walletRepo.Decline(ctx, requestID, s.now())
	if err != nil {
		logger.Error("Failed to decline wallet request", "request_id", requestID, "error", err)
		return domain.WalletRequest{}, err
	}

	metrics.WalletRequestsProcessed.WithLabelValues("declined").Inc()
	logger.Info("Wallet request declined", "request_id", request.ID, "user_id", request.UserID)
	return request, nil
}

func (s *walletService) ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.WalletRequest, error) {
	if !caller.CanActFor(userID) {
		return nil, domain.ErrUnauthorized
	}

	return s.walletRepo.FindByUser(ctx, userID)
}

func (s *walletService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.WalletRequest, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	return s.walletRepo.FindAll(ctx)
}
