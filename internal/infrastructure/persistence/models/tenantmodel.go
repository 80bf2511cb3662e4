package models

import (
	"time"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// TenantModel is the persistence model for tenants. The only table without a
// tenant_id column.
type TenantModel struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"uniqueIndex;not null;size:100"`
	Name      string `gorm:"not null;size:255"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TenantModel) TableName() string {
	return constants.TableTenants
}

// TenantSettingsModel is the per-tenant configuration singleton. The key
// column is always "default"; the row is created lazily on first write.
type TenantSettingsModel struct {
	Key                     string `gorm:"primaryKey;size:20;default:default"`
	TenantID                uint   `gorm:"primaryKey;autoIncrement:false"`
	MaxPauseDays            int    `gorm:"not null;default:90"`
	AllowCustomerPause      bool   `gorm:"not null;default:true"`
	AllowCustomerSkip       bool   `gorm:"not null;default:true"`
	CancellationFlowEnabled bool   `gorm:"not null;default:true"`
	NotificationEmail       string `gorm:"size:255"`
	UpdatedAt               time.Time
}

func (TenantSettingsModel) TableName() string {
	return constants.TableTenantSettings
}

// AdminUserModel is the persistence model for operator accounts.
type AdminUserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminUserModel) TableName() string {
	return constants.TableAdminUsers
}

// EmailQueueModel is the outbox consumed by the email worker. Save-flow
// send_email steps write rows here; delivery happens out of band.
type EmailQueueModel struct {
	ID         uint   `gorm:"primarykey"`
	TenantID   uint   `gorm:"not null;index:idx_tenant_email"`
	ToAddress  string `gorm:"not null;size:255"`
	Subject    string `gorm:"not null;size:500"`
	BodyHTML   string `gorm:"type:text"`
	Template   string `gorm:"size:100"`
	Status     string `gorm:"not null;size:20;default:pending;index:idx_email_status"`
	LastError  *string `gorm:"size:1000"`
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EmailQueueModel) TableName() string {
	return constants.TableEmailQueue
}
