package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"viralWallet/domain"

	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	balances map[uint]float64
	orders   map[uint]*domain.Order
	nextID   uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		balances: make(map[uint]float64),
		orders:   make(map[uint]*domain.Order),
		nextID:   1,
	}
}

func (f *fakeOrderRepo) CreateWithDebit(_ context.Context, order *domain.Order) error {
	balance, ok := f.balances[order.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	if balance < order.Price {
		return fmt.Errorf("%w: balance %.2f, need %.2f", domain.ErrInsufficientFunds, balance, order.Price)
	}

	f.balances[order.UserID] = balance - order.Price
	order.ID = f.nextID
	f.nextID++
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (f *fakeOrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByUser(_ context.Context, userID uint) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindStuckProcessing(_ context.Context, cutoff time.Time) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, order := range f.orders {
		if order.Status == domain.OrderStatusProcessing && !order.CreatedAt.After(cutoff) {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, from, to string, completedAt *time.Time) error {
	order, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if order.Status != from {
		return fmt.Errorf("%w: order %d is %s, expected %s", domain.ErrInvalidState, id, order.Status, from)
	}
	order.Status = to
	order.CompletedAt = completedAt
	return nil
}

type fakeServiceRepo struct {
	services map[uint]domain.Service
}

func (f *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	f.services[service.ID] = *service
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uint) (domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return domain.Service{}, domain.ErrNotFound
	}
	return svc, nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context) ([]domain.Service, error)    { return nil, nil }
func (f *fakeServiceRepo) FindActive(_ context.Context) ([]domain.Service, error) { return nil, nil }
func (f *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	f.services[service.ID] = *service
	return nil
}
func (f *fakeServiceRepo) Delete(_ context.Context, id uint) error {
	delete(f.services, id)
	return nil
}

func testCatalog() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[uint]domain.Service{
		1: {ID: 1, Platform: "Instagram", ServiceType: "Followers", PricePer1000: 2500, Min: 100, Max: 50000, Status: domain.ServiceStatusActive},
		2: {ID: 2, Platform: "TikTok", ServiceType: "Views", PricePer1000: 100, Min: 1000, Max: 1000000, Status: domain.ServiceStatusInactive},
	}}
}

func TestCreateOrderDebitsAndPersists(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 15000
	svc := NewOrdersService(repo, testCatalog())
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	order, err := svc.CreateOrder(context.Background(), caller, CreateOrderInput{
		UserID:    7,
		ServiceID: 1,
		Quantity:  1000,
		Link:      "https://instagram.com/someuser",
	})
	require.NoError(t, err)

	require.Equal(t, float64(2500), order.Price)
	require.Equal(t, float64(12500), repo.balances[7])
	require.Equal(t, domain.OrderStatusProcessing, order.Status)
	require.Equal(t, "Followers", order.ServiceName)
	require.Equal(t, "Instagram", order.Platform)
	require.NotEmpty(t, order.Reference)
	require.Nil(t, order.CompletedAt)

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.Reference, stored.Reference)
}

func TestCreateOrderInsufficientFunds(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 2000
	svc := NewOrdersService(repo, testCatalog())
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	_, err := svc.CreateOrder(context.Background(), caller, CreateOrderInput{
		UserID:    7,
		ServiceID: 1,
		Quantity:  1000,
		Link:      "https://instagram.com/someuser",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	require.Equal(t, float64(2000), repo.balances[7], "failed order must not touch the balance")
	require.Empty(t, repo.orders, "failed order must not be persisted")
}

func TestCreateOrderRejectsInactiveService(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 100000
	svc := NewOrdersService(repo, testCatalog())
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	_, err := svc.CreateOrder(context.Background(), caller, CreateOrderInput{
		UserID:    7,
		ServiceID: 2,
		Quantity:  5000,
		Link:      "https://tiktok.com/@someuser/video/1",
	})
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestCreateOrderQuantityBounds(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 100000
	svc := NewOrdersService(repo, testCatalog())
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	_, err := svc.CreateOrder(context.Background(), caller, CreateOrderInput{
		UserID:    7,
		ServiceID: 1,
		Quantity:  50,
		Link:      "https://instagram.com/someuser",
	})
	require.ErrorIs(t, err, domain.ErrOutOfRange)
	require.Equal(t, float64(100000), repo.balances[7])
}

func TestCreateOrderRejectsBadLink(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 100000
	svc := NewOrdersService(repo, testCatalog())
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	for _, link := range []string{"", "not a url", "instagram.com/someuser"} {
		_, err := svc.CreateOrder(context.Background(), caller, CreateOrderInput{
			UserID:    7,
			ServiceID: 1,
			Quantity:  1000,
			Link:      link,
		})
		require.Error(t, err, "link %q must be rejected", link)
	}
}

func TestCreateOrderForOtherUserRequiresAdmin(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.balances[7] = 100000
	svc := NewOrdersService(repo, testCatalog())

	_, err := svc.CreateOrder(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleCustomer}, CreateOrderInput{
		UserID:    7,
		ServiceID: 1,
		Quantity:  1000,
		Link:      "https://instagram.com/someuser",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.CreateOrder(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleAdmin}, CreateOrderInput{
		UserID:    7,
		ServiceID: 1,
		Quantity:  1000,
		Link:      "https://instagram.com/someuser",
	})
	require.NoError(t, err)
}

func TestSetStatusTransitions(t *testing.T) {
	admin := domain.Caller{UserID: 1, Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"pending to processing", domain.OrderStatusPending, domain.OrderStatusProcessing, nil},
		{"processing to completed", domain.OrderStatusProcessing, domain.OrderStatusCompleted, nil},
		{"processing to failed", domain.OrderStatusProcessing, domain.OrderStatusFailed, nil},
		{"pending to completed", domain.OrderStatusPending, domain.OrderStatusCompleted, domain.ErrInvalidTransition},
		{"completed is terminal", domain.OrderStatusCompleted, domain.OrderStatusFailed, domain.ErrInvalidTransition},
		{"failed is terminal", domain.OrderStatusFailed, domain.OrderStatusProcessing, domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			repo.orders[1] = &domain.Order{ID: 1, UserID: 7, Status: tt.from}
			repo.nextID = 2
			svc := NewOrdersService(repo, testCatalog())

			updated, err := svc.SetStatus(context.Background(), admin, 1, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.to, updated.Status)

			if tt.to == domain.OrderStatusCompleted {
				require.NotNil(t, updated.CompletedAt)
			} else {
				require.Nil(t, updated.CompletedAt)
			}
		})
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &domain.Order{ID: 1, Status: domain.OrderStatusProcessing}
	svc := NewOrdersService(repo, testCatalog())

	_, err := svc.SetStatus(context.Background(), domain.Caller{Role: domain.RoleAdmin}, 1, "cancelled")
	require.Error(t, err)

	_, err = svc.SetStatus(context.Background(), domain.Caller{UserID: 7, Role: domain.RoleCustomer}, 1, domain.OrderStatusCompleted)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAutoCompleteStampsCompletedAt(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &domain.Order{ID: 1, UserID: 7, Status: domain.OrderStatusProcessing}
	svc := NewOrdersService(repo, testCatalog())

	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	order, err := svc.AutoComplete(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	require.Equal(t, frozen, *order.CompletedAt)

	_, err = svc.AutoComplete(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListStuckProcessingUsesGraceCutoff(t *testing.T) {
	repo := newFakeOrderRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo.orders[1] = &domain.Order{ID: 1, Status: domain.OrderStatusProcessing, CreatedAt: now.Add(-10 * time.Minute)}
	repo.orders[2] = &domain.Order{ID: 2, Status: domain.OrderStatusProcessing, CreatedAt: now.Add(-2 * time.Minute)}
	repo.orders[3] = &domain.Order{ID: 3, Status: domain.OrderStatusCompleted, CreatedAt: now.Add(-30 * time.Minute)}

	svc := NewOrdersService(repo, testCatalog())
	svc.now = func() time.Time { return now }

	stuck, err := svc.ListStuckProcessing(context.Background(), 5*time.Minute)
	require.NoError(t, err)
	require.Len(t, stuck, 1)
	require.Equal(t, uint(1), stuck[0].ID)
}

func TestGetOrderOwnership(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &domain.Order{ID: 1, UserID: 7, Status: domain.OrderStatusProcessing}
	svc := NewOrdersService(repo, testCatalog())

	_, err := svc.GetOrder(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleCustomer}, 1)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	order, err := svc.GetOrder(context.Background(), domain.Caller{UserID: 7, Role: domain.RoleCustomer}, 1)
	require.NoError(t, err)
	require.Equal(t, uint(1), order.ID)

	_, err = svc.GetOrder(context.Background(), domain.Caller{UserID: 2, Role: domain.RoleAdmin}, 1)
	require.NoError(t, err)
}
