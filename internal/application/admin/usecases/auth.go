package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/domain/admin"
	"github.com/retain-hq/retain/internal/infrastructure/auth"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type LoginCommand struct {
	Email      string
	Password   string
	TenantSlug string
}

// LoginResult carries the issued token and the admin profile.
type LoginResult struct {
	Token string   `json:"token"`
	Admin AdminDTO `json:"admin"`
}

type AdminDTO struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AuthUseCase handles admin login and account creation. Lookup and password
// failures collapse into one invalid-credentials error so the endpoint does
// not leak which emails exist.
type AuthUseCase struct {
	adminRepo admin.Repository
	hasher    admin.PasswordHasher
	jwt       *auth.JWTService
	logger    logger.Interface
}

func NewAuthUseCase(
	adminRepo admin.Repository,
	hasher admin.PasswordHasher,
	jwtService *auth.JWTService,
	logger logger.Interface,
) *AuthUseCase {
	return &AuthUseCase{
		adminRepo: adminRepo,
		hasher:    hasher,
		jwt:       jwtService,
		logger:    logger,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	user, err := uc.adminRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get admin user", "error", err)
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if err := user.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Infow("failed login attempt", "email", cmd.Email)
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	user.RecordLogin()
	if err := uc.adminRepo.Update(ctx, user); err != nil {
		// A lost login stamp is not worth failing the session over.
		uc.logger.Warnw("failed to record login", "error", err, "email", cmd.Email)
	}

	token, err := uc.jwt.Generate(user.ID(), user.Email(), cmd.TenantSlug)
	if err != nil {
		uc.logger.Errorw("failed to generate token", "error", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Infow("admin logged in", "email", user.Email(), "tenant_slug", cmd.TenantSlug)
	return &LoginResult{Token: token, Admin: toAdminDTO(user)}, nil
}

type CreateAdminCommand struct {
	Email    string
	Name     string
	Password string
}

func (uc *AuthUseCase) CreateAdmin(ctx context.Context, cmd CreateAdminCommand) (*AdminDTO, error) {
	existing, err := uc.adminRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check existing admin", "error", err)
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("an admin with this email already exists")
	}

	user, err := admin.NewUser(cmd.Email, cmd.Name, cmd.Password, uc.hasher)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.adminRepo.Create(ctx, user); err != nil {
		uc.logger.Errorw("failed to create admin user", "error", err)
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	uc.logger.Infow("admin user created", "email", user.Email())
	result := toAdminDTO(user)
	return &result, nil
}

func toAdminDTO(u *admin.User) AdminDTO {
	return AdminDTO{
		ID:          u.ID(),
		Email:       u.Email(),
		Name:        u.Name(),
		LastLoginAt: u.LastLoginAt(),
	}
}
