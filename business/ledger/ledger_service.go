package ledger

import (
	"context"
	"errors"

	"viralWallet/domain"
	"viralWallet/pkg/logger"
)

// LedgerRepository contract interface. Implementations must apply Debit and
// Credit atomically per user (row lock or equivalent) so concurrent
// movements on one wallet never lose updates.
type LedgerRepository interface {
	GetBalance(ctx context.Context, userID uint) (float64, error)
	Debit(ctx context.Context, userID uint, amount float64) (float64, error)
	Credit(ctx context.Context, userID uint, amount float64) (float64, error)
}

type ledgerService struct {
	ledgerRepo LedgerRepository
}

func NewLedgerService(ledgerRepo LedgerRepository) *ledgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, caller domain.Caller, userID uint) (float64, error) {
	if !caller.CanActFor(userID) {
		return 0, domain.ErrUnauthorized
	}

	return s.ledgerRepo.GetBalance(ctx, userID)
}

// Debit removes amount from the wallet: the admin manual-correction path.
// Fails with ErrInsufficientFunds when the balance would go negative; the
// balance is left untouched in that case.
func (s *ledgerService) Debit(ctx context.Context, caller domain.Caller, userID uint, amount float64) (float64, error) {
	if !caller.IsAdmin() {
		return 0, domain.ErrUnauthorized
	}

	if amount <= 0 {
		return 0, errors.New("debit amount must be positive")
	}

	newBalance, err := s.ledgerRepo.Debit(ctx, userID, amount)
	if err != nil {
		logger.Error("Wallet debit failed", "user_id", userID, "amount", amount, "error", err)
		return 0, err
	}

	logger.Info("Wallet debited", "user_id", userID, "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// Credit adds amount to the wallet: the admin manual-correction path,
// e.g. refunding a failed order. No upper bound.
func (s *ledgerService) Credit(ctx context.Context, caller domain.Caller, userID uint, amount float64) (float64, error) {
	if !caller.IsAdmin() {
		return 0, domain.ErrUnauthorized
	}

	if amount <= 0 {
		return 0, errors.New("credit amount must be positive")
	}

	newBalance, err := s.ledgerRepo.Credit(ctx, userID, amount)
	if err != nil {
		logger.Error("Wallet credit failed", "user_id", userID, "amount", amount, "error", err)
		return 0, err
	}

	logger.Info("Wallet credited", "user_id", userID, "amount", amount, "balance", newBalance)
	return newBalance, nil
}
