package user

import (
	"context"
	"testing"

	"viralWallet/domain"
	"viralWallet/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
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

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	user, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Status = status
	f.users[id] = user
	return nil
}

func (f *fakeUserRepo) UpdateEmailVerification(_ context.Context, id uint, isVerified bool) error {
	user, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.IsVerified = isVerified
	f.users[id] = user
	return nil
}

type fakeNotifRepo struct {
	sent []string
}

func (f *fakeNotifRepo) SendEmail(_, toEmail, _, _ string) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

func testUserService(repo *fakeUserRepo, notif *fakeNotifRepo) *userService {
	utils.InitJWT("test-secret")
	return NewUserService(repo, validator.New(), notif, "0123456789abcdef", "http://localhost:8080")
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	notif := &fakeNotifRepo{}
	svc := testUserService(repo, notif)

	created, err := svc.Register(context.Background(), &domain.User{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Phone:    "081234567890",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.Equal(t, domain.RoleCustomer, created.Role)
	require.Equal(t, domain.UserStatusActive, created.Status)
	require.Zero(t, created.Balance, "new accounts start with an empty wallet")
	require.Empty(t, created.Password)

	stored := repo.users[created.ID]
	require.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
	require.True(t, utils.CheckPassword("secret123", stored.Password))

	require.Equal(t, []string{"budi@example.com"}, notif.sent)
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})

	_, err := svc.Register(context.Background(), &domain.User{Name: "X", Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)

	_, err = svc.Register(context.Background(), &domain.User{Name: "X", Email: "x@example.com", Password: "short"})
	require.Error(t, err)

	_, err = svc.Register(context.Background(), &domain.User{Name: "X", Email: "x@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &domain.User{Name: "Y", Email: "x@example.com", Password: "secret123"})
	require.Error(t, err, "duplicate email must be rejected")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})

	_, err := svc.Register(context.Background(), &domain.User{Name: "Budi", Email: "budi@example.com", Password: "secret123"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "budi@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Empty(t, user.Password)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	require.Equal(t, "1", claims.UserID)
	require.Equal(t, domain.RoleCustomer, claims.Role)

	_, _, err = svc.Login(context.Background(), "budi@example.com", "wrongpass")
	require.Error(t, err)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
}

func TestLoginSuspendedUserBlocked(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})
	admin := domain.Caller{UserID: 99, Role: domain.RoleAdmin}

	created, err := svc.Register(context.Background(), &domain.User{Name: "Budi", Email: "budi@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), admin, created.ID, domain.UserStatusSuspended))

	_, _, err = svc.Login(context.Background(), "budi@example.com", "secret123")
	require.Error(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), admin, created.ID, domain.UserStatusActive))

	_, _, err = svc.Login(context.Background(), "budi@example.com", "secret123")
	require.NoError(t, err)
}

func TestSetStatusValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})
	admin := domain.Caller{UserID: 99, Role: domain.RoleAdmin}

	created, err := svc.Register(context.Background(), &domain.User{Name: "Budi", Email: "budi@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.SetStatus(context.Background(), domain.Caller{UserID: created.ID, Role: domain.RoleCustomer}, created.ID, domain.UserStatusSuspended)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.SetStatus(context.Background(), admin, created.ID, "banned")
	require.Error(t, err)
}

func TestGetUserByIDOwnership(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})

	created, err := svc.Register(context.Background(), &domain.User{Name: "Budi", Email: "budi@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.GetUserByID(context.Background(), domain.Caller{UserID: created.ID + 1, Role: domain.RoleCustomer}, created.ID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	fetched, err := svc.GetUserByID(context.Background(), domain.Caller{UserID: created.ID, Role: domain.RoleCustomer}, created.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.Password)
}

func TestUpdateUserKeepsBalanceAndRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testUserService(repo, &fakeNotifRepo{})

	created, err := svc.Register(context.Background(), &domain.User{Name: "Budi", Email: "budi@example.com", Password: "secret123"})
	require.NoError(t, err)

	seeded := repo.users[created.ID]
	seeded.Balance = 5000
	repo.users[created.ID] = seeded

	caller := domain.Caller{UserID: created.ID, Role: domain.RoleCustomer}
	updated, err := svc.UpdateUser(context.Background(), caller, created.ID, &domain.User{
		Name:    "Budi S.",
		Balance: 999999,
		Role:    domain.RoleAdmin,
	})
	require.NoError(t, err)

	require.Equal(t, "Budi S.", updated.Name)
	require.Equal(t, float64(5000), repo.users[created.ID].Balance, "profile updates must not move the balance")
	require.Equal(t, domain.RoleCustomer, repo.users[created.ID].Role)
}
