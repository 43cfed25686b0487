package driver

import (
	"context"
	"sync"
	"testing"
	"time"

	domainUser "logitrack/internal/domain/user"
	appErrors "logitrack/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domainUser.Role) ([]*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domainUser.User
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) add(u *domainUser.User) *domainUser.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func adminIdentity() *domainUser.Identity {
	return &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleAdmin}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateDriverSetsDriverRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), adminIdentity(), &CreateDriverRequest{
		Name:     "Abebe Kebede",
		Email:    "abebe@logitrack.com",
		Password: "driver123",
	})
	require.NoError(t, err)
	assert.Equal(t, "driver", resp.Role)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleDriver, stored.Role)
	assert.NotEqual(t, "driver123", stored.PasswordHash)
}

func TestCreateDriverRequiresAdmin(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	driverID := uuid.New()

	_, err := svc.Create(context.Background(), &domainUser.Identity{UserID: driverID, Role: domainUser.RoleDriver}, &CreateDriverRequest{
		Name:     "Abebe Kebede",
		Email:    "abebe@logitrack.com",
		Password: "driver123",
	})
	assertAppErrorCode(t, err, appErrors.CodeForbidden)

	_, err = svc.Create(context.Background(), nil, &CreateDriverRequest{})
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)
}

func TestCreateDriverDuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	admin := adminIdentity()

	req := &CreateDriverRequest{
		Name:     "Abebe Kebede",
		Email:    "abebe@logitrack.com",
		Password: "driver123",
	}

	_, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), admin, req)
	assertAppErrorCode(t, err, appErrors.CodeConflict)
}

func TestCreateDriverValidatesInput(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	admin := adminIdentity()

	_, err := svc.Create(context.Background(), admin, &CreateDriverRequest{
		Name:     "Abebe Kebede",
		Email:    "not-an-email",
		Password: "driver123",
	})
	assertAppErrorCode(t, err, appErrors.CodeValidation)

	_, err = svc.Create(context.Background(), admin, &CreateDriverRequest{
		Name:     "Abebe Kebede",
		Email:    "abebe@logitrack.com",
		Password: "passwordonly",
	})
	assertAppErrorCode(t, err, appErrors.CodeValidation)
}

func TestListReturnsOnlyDrivers(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&domainUser.User{Name: "Admin User", Email: "admin@logitrack.com", Role: domainUser.RoleAdmin})
	abebe := repo.add(&domainUser.User{Name: "Abebe Kebede", Email: "abebe@logitrack.com", Role: domainUser.RoleDriver})
	bekele := repo.add(&domainUser.User{Name: "Bekele Tadesse", Email: "bekele@logitrack.com", Role: domainUser.RoleDriver})

	svc := NewService(repo)

	drivers, err := svc.List(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	ids := []uuid.UUID{drivers[0].ID, drivers[1].ID}
	assert.Contains(t, ids, abebe.ID)
	assert.Contains(t, ids, bekele.ID)

	_, err = svc.List(context.Background(), &domainUser.Identity{UserID: abebe.ID, Role: domainUser.RoleDriver})
	assertAppErrorCode(t, err, appErrors.CodeForbidden)
}

func TestProfileReturnsOwnRecord(t *testing.T) {
	repo := newFakeUserRepo()
	abebe := repo.add(&domainUser.User{Name: "Abebe Kebede", Email: "abebe@logitrack.com", Role: domainUser.RoleDriver})

	svc := NewService(repo)

	resp, err := svc.Profile(context.Background(), &domainUser.Identity{UserID: abebe.ID, Role: domainUser.RoleDriver})
	require.NoError(t, err)
	assert.Equal(t, abebe.ID, resp.ID)
	assert.Equal(t, "Abebe Kebede", resp.Name)

	_, err = svc.Profile(context.Background(), adminIdentity())
	assertAppErrorCode(t, err, appErrors.CodeForbidden)

	_, err = svc.Profile(context.Background(), &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleDriver})
	assertAppErrorCode(t, err, appErrors.CodeNotFound)
}
