package admin

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PasswordHasher abstracts the hash algorithm so the domain stays free of
// crypto imports.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// User is an operator account for the admin surface. Admin users are global,
// not tenant-scoped; tenant access is carried in the session token.
type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active admin user with a hashed password.
func NewUser(email, name, password string, hasher PasswordHasher) (*User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: hash,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds an admin user from persistence.
func ReconstructUser(id uint, email, name, passwordHash string, active bool, lastLoginAt *time.Time, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("admin user ID cannot be zero")
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) Name() string            { return u.name }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Active() bool            { return u.active }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// SetIDFromStore sets the user ID after insert (persistence layer use only).
func (u *User) SetIDFromStore(id uint) {
	if u.id == 0 {
		u.id = id
	}
}

// VerifyPassword checks a login attempt against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	if !u.active {
		return ErrInvalidCredentials
	}
	if err := hasher.Verify(password, u.passwordHash); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// RecordLogin stamps a successful login.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// Deactivate disables the account without deleting it.
func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = time.Now().UTC()
}

// Repository persists admin users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}
