package ledger

import (
	"context"
	"fmt"
	"testing"

	"viralWallet/domain"

	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	balances map[uint]float64
}

func (f *fakeLedgerRepo) GetBalance(_ context.Context, userID uint) (float64, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return balance, nil
}

func (f *fakeLedgerRepo) Debit(_ context.Context, userID uint, amount float64) (float64, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if balance < amount {
		return 0, fmt.Errorf("%w: balance %.2f, need %.2f", domain.ErrInsufficientFunds, balance, amount)
	}
	f.balances[userID] = balance - amount
	return f.balances[userID], nil
}

func (f *fakeLedgerRepo) Credit(_ context.Context, userID uint, amount float64) (float64, error) {
	if _, ok := f.balances[userID]; !ok {
		return 0, domain.ErrNotFound
	}
	f.balances[userID] += amount
	return f.balances[userID], nil
}

func TestDebitNeverGoesNegative(t *testing.T) {
	repo := &fakeLedgerRepo{balances: map[uint]float64{7: 1000}}
	svc := NewLedgerService(repo)
	admin := domain.Caller{UserID: 1, Role: domain.RoleAdmin}

	balance, err := svc.Debit(context.Background(), admin, 7, 1000)
	require.NoError(t, err)
	require.Zero(t, balance)

	_, err = svc.Debit(context.Background(), admin, 7, 0.01)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Zero(t, repo.balances[7])
}

func TestDebitCreditRejectNonPositiveAmounts(t *testing.T) {
	repo := &fakeLedgerRepo{balances: map[uint]float64{7: 1000}}
	svc := NewLedgerService(repo)
	admin := domain.Caller{UserID: 1, Role: domain.RoleAdmin}

	for _, amount := range []float64{0, -50} {
		_, err := svc.Debit(context.Background(), admin, 7, amount)
		require.Error(t, err)
		_, err = svc.Credit(context.Background(), admin, 7, amount)
		require.Error(t, err)
	}
	require.Equal(t, float64(1000), repo.balances[7])
}

func TestCredit(t *testing.T) {
	repo := &fakeLedgerRepo{balances: map[uint]float64{7: 250}}
	svc := NewLedgerService(repo)

	balance, err := svc.Credit(context.Background(), domain.Caller{UserID: 1, Role: domain.RoleAdmin}, 7, 4750)
	require.NoError(t, err)
	require.Equal(t, float64(5000), balance)
}

func TestManualAdjustmentsRequireAdmin(t *testing.T) {
	repo := &fakeLedgerRepo{balances: map[uint]float64{7: 1000}}
	svc := NewLedgerService(repo)
	owner := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	_, err := svc.Credit(context.Background(), owner, 7, 500)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Debit(context.Background(), owner, 7, 500)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.Equal(t, float64(1000), repo.balances[7], "rejected adjustments must not move the balance")
}

func TestGetBalanceAuthorization(t *testing.T) {
	repo := &fakeLedgerRepo{balances: map[uint]float64{7: 1234}}
	svc := NewLedgerService(repo)

	_, err := svc.GetBalance(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleCustomer}, 7)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	balance, err := svc.GetBalance(context.Background(), domain.Caller{UserID: 7, Role: domain.RoleCustomer}, 7)
	require.NoError(t, err)
	require.Equal(t, float64(1234), balance)

	balance, err = svc.GetBalance(context.Background(), domain.Caller{UserID: 1, Role: domain.RoleAdmin}, 7)
	require.NoError(t, err)
	require.Equal(t, float64(1234), balance)
}
