package settings

import (
	"context"
	"time"
)

// DefaultKey is the fixed primary key of the per-tenant settings row. The
// row is created lazily on first write.
const DefaultKey = "default"

const (
	DefaultMaxPauseDays = 90
)

// Settings is the tenant-wide configuration singleton.
type Settings struct {
	Key                     string
	TenantID                uint
	MaxPauseDays            int
	AllowCustomerPause      bool
	AllowCustomerSkip       bool
	CancellationFlowEnabled bool
	NotificationEmail       string
	UpdatedAt               time.Time
}

// Defaults returns the settings used before a tenant has ever written any.
func Defaults(tenantID uint) *Settings {
	return &Settings{
		Key:                     DefaultKey,
		TenantID:                tenantID,
		MaxPauseDays:            DefaultMaxPauseDays,
		AllowCustomerPause:      true,
		AllowCustomerSkip:       true,
		CancellationFlowEnabled: true,
	}
}

// Update holds a partial settings write. Nil fields are left untouched.
type Update struct {
	MaxPauseDays            *int
	AllowCustomerPause      *bool
	AllowCustomerSkip       *bool
	CancellationFlowEnabled *bool
	NotificationEmail       *string
}

// Apply merges the update into the settings in place.
func (s *Settings) Apply(u Update) {
	if u.MaxPauseDays != nil && *u.MaxPauseDays > 0 {
		s.MaxPauseDays = *u.MaxPauseDays
	}
	if u.AllowCustomerPause != nil {
		s.AllowCustomerPause = *u.AllowCustomerPause
	}
	if u.AllowCustomerSkip != nil {
		s.AllowCustomerSkip = *u.AllowCustomerSkip
	}
	if u.CancellationFlowEnabled != nil {
		s.CancellationFlowEnabled = *u.CancellationFlowEnabled
	}
	if u.NotificationEmail != nil {
		s.NotificationEmail = *u.NotificationEmail
	}
	s.UpdatedAt = time.Now().UTC()
}

// Repository reads and writes the singleton row. Get returns Defaults when
// the row does not exist yet; Upsert creates it on first write.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}
