package support

import (
	"context"
	"fmt"
	"testing"

	"viralWallet/domain"

	"github.com/stretchr/testify/require"
)

type fakeSupportRepo struct {
	tickets map[uint]*domain.SupportTicket
	nextID  uint
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{tickets: make(map[uint]*domain.SupportTicket), nextID: 1}
}

func (f *fakeSupportRepo) Create(_ context.Context, ticket *domain.SupportTicket) error {
	ticket.ID = f.nextID
	f.nextID++
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeSupportRepo) FindByID(_ context.Context, id uint) (domain.SupportTicket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.SupportTicket{}, domain.ErrNotFound
	}
	return *ticket, nil
}

func (f *fakeSupportRepo) FindAll(_ context.Context) ([]domain.SupportTicket, error) {
	out := make([]domain.SupportTicket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		out = append(out, *ticket)
	}
	return out, nil
}

func (f *fakeSupportRepo) FindByUser(_ context.Context, userID uint) ([]domain.SupportTicket, error) {
	out := []domain.SupportTicket{}
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (f *fakeSupportRepo) Close(_ context.Context, id uint, reply string) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	if ticket.Status != domain.TicketStatusOpen {
		return fmt.Errorf("%w: ticket %d is %s", domain.ErrInvalidState, id, ticket.Status)
	}
	ticket.Status = domain.TicketStatusClosed
	ticket.Reply = &reply
	return nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error)          { return nil, nil }
func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error         { return nil }
func (f *fakeUserRepo) UpdateStatus(_ context.Context, _ uint, _ string) error    { return nil }
func (f *fakeUserRepo) UpdateEmailVerification(_ context.Context, _ uint, _ bool) error {
	return nil
}

func testSupportService(repo *fakeSupportRepo) *supportService {
	users := &fakeUserRepo{users: map[uint]domain.User{
		7: {ID: 7, Name: "Budi Santoso", Role: domain.RoleCustomer},
	}}
	return NewSupportService(repo, users)
}

func TestCreateTicket(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := testSupportService(repo)
	caller := domain.Caller{UserID: 7, Role: domain.RoleCustomer}

	ticket, err := svc.CreateTicket(context.Background(), caller, 7, "Order stuck", "My order has been processing for a day")
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Equal(t, "Budi Santoso", ticket.UserName)
	require.Nil(t, ticket.Reply)

	_, err = svc.CreateTicket(context.Background(), caller, 7, "", "no subject")
	require.Error(t, err)

	_, err = svc.CreateTicket(context.Background(), caller, 7, "no message", "")
	require.Error(t, err)

	_, err = svc.CreateTicket(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleCustomer}, 7, "a", "b")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCloseTicket(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := testSupportService(repo)
	customer := domain.Caller{UserID: 7, Role: domain.RoleCustomer}
	admin := domain.Caller{UserID: 1, Role: domain.RoleAdmin}

	ticket, err := svc.CreateTicket(context.Background(), customer, 7, "Order stuck", "Please check")
	require.NoError(t, err)

	err = svc.CloseTicket(context.Background(), customer, ticket.ID, "done")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.CloseTicket(context.Background(), admin, ticket.ID, "")
	require.Error(t, err, "closing requires a reply")

	err = svc.CloseTicket(context.Background(), admin, ticket.ID, "Resolved, order completed")
	require.NoError(t, err)

	stored := repo.tickets[ticket.ID]
	require.Equal(t, domain.TicketStatusClosed, stored.Status)
	require.NotNil(t, stored.Reply)
	require.Equal(t, "Resolved, order completed", *stored.Reply)

	err = svc.CloseTicket(context.Background(), admin, ticket.ID, "again")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestListTickets(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := testSupportService(repo)
	customer := domain.Caller{UserID: 7, Role: domain.RoleCustomer}
	admin := domain.Caller{UserID: 1, Role: domain.RoleAdmin}

	_, err := svc.CreateTicket(context.Background(), customer, 7, "a", "b")
	require.NoError(t, err)

	mine, err := svc.ListByUser(context.Background(), customer, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = svc.ListByUser(context.Background(), domain.Caller{UserID: 9, Role: domain.RoleCustomer}, 7)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	all, err := svc.ListAll(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = svc.ListAll(context.Background(), customer)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
