package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/admin"
	"github.com/retain-hq/retain/internal/infrastructure/auth"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockAdminRepository struct {
	CreateFunc     func(ctx context.Context, user *admin.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*admin.User, error)
	GetByIDFunc    func(ctx context.Context, id uint) (*admin.User, error)
	UpdateFunc     func(ctx context.Context, user *admin.User) error
}

func (m *mockAdminRepository) Create(ctx context.Context, user *admin.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.SetIDFromStore(1)
	return nil
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*admin.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockAdminRepository) GetByID(ctx context.Context, id uint) (*admin.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAdminRepository) Update(ctx context.Context, user *admin.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// plainHasher makes password assertions readable without bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func testAdmin(t *testing.T) *admin.User {
	t.Helper()
	user, err := admin.ReconstructUser(1, "ops@acme.test", "Ops Admin", "hashed:correct-horse",
		true, nil, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)
	return user
}

func newAuthUseCase(repo *mockAdminRepository) *AuthUseCase {
	return NewAuthUseCase(repo, plainHasher{}, auth.NewJWTService("test-secret", 60), &mockLogger{})
}

func TestAuthUseCase_LoginSuccess(t *testing.T) {
	user := testAdmin(t)
	var recorded *admin.User
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return user, nil
		},
		UpdateFunc: func(ctx context.Context, u *admin.User) error {
			recorded = u
			return nil
		},
	}

	result, err := newAuthUseCase(repo).Login(context.Background(), LoginCommand{
		Email:      "ops@acme.test",
		Password:   "correct-horse",
		TenantSlug: "acme-coffee",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ops@acme.test", result.Admin.Email)
	require.NotNil(t, recorded, "login timestamp must be recorded")
	assert.NotNil(t, recorded.LastLoginAt())
}

func TestAuthUseCase_LoginUnknownEmail(t *testing.T) {
	result, err := newAuthUseCase(&mockAdminRepository{}).Login(context.Background(), LoginCommand{
		Email:    "nobody@acme.test",
		Password: "whatever",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	// Unknown email and wrong password read identically to the caller.
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAuthUseCase_LoginWrongPassword(t *testing.T) {
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return testAdmin(t), nil
		},
	}

	_, err := newAuthUseCase(repo).Login(context.Background(), LoginCommand{
		Email:    "ops@acme.test",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAuthUseCase_LoginDeactivatedAccount(t *testing.T) {
	user := testAdmin(t)
	user.Deactivate()
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return user, nil
		},
	}

	_, err := newAuthUseCase(repo).Login(context.Background(), LoginCommand{
		Email:    "ops@acme.test",
		Password: "correct-horse",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAuthUseCase_LoginSurvivesLostLoginStamp(t *testing.T) {
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return testAdmin(t), nil
		},
		UpdateFunc: func(ctx context.Context, u *admin.User) error {
			return assert.AnError
		},
	}

	result, err := newAuthUseCase(repo).Login(context.Background(), LoginCommand{
		Email:      "ops@acme.test",
		Password:   "correct-horse",
		TenantSlug: "acme-coffee",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestAuthUseCase_CreateAdmin(t *testing.T) {
	var created *admin.User
	repo := &mockAdminRepository{
		CreateFunc: func(ctx context.Context, user *admin.User) error {
			user.SetIDFromStore(7)
			created = user
			return nil
		},
	}

	result, err := newAuthUseCase(repo).CreateAdmin(context.Background(), CreateAdminCommand{
		Email:    "new@acme.test",
		Name:     "New Admin",
		Password: "long-enough-password",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), result.ID)
	require.NotNil(t, created)
	assert.Equal(t, "hashed:long-enough-password", created.PasswordHash())
}

func TestAuthUseCase_CreateAdminDuplicateEmail(t *testing.T) {
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return testAdmin(t), nil
		},
	}

	_, err := newAuthUseCase(repo).CreateAdmin(context.Background(), CreateAdminCommand{
		Email:    "ops@acme.test",
		Name:     "Duplicate",
		Password: "long-enough-password",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAuthUseCase_CreateAdminShortPassword(t *testing.T) {
	_, err := newAuthUseCase(&mockAdminRepository{}).CreateAdmin(context.Background(), CreateAdminCommand{
		Email:    "new@acme.test",
		Name:     "New Admin",
		Password: "short",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
