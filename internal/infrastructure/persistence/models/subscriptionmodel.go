package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions. This is the
// anti-corruption layer between domain and database.
type SubscriptionModel struct {
	ID       uint   `gorm:"primarykey"`
	SID      string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	TenantID uint   `gorm:"not null;index:idx_tenant_subscription"`

	Provider               string `gorm:"not null;size:20;index:idx_provider"`
	ProviderSubscriptionID string `gorm:"size:100;index:idx_provider_sub_id"`

	CustomerID    string `gorm:"not null;size:100;index:idx_customer"`
	CustomerEmail string `gorm:"size:255"`
	CustomerName  string `gorm:"size:255"`

	ProductID     string `gorm:"not null;size:100;index:idx_product"`
	VariantID     string `gorm:"size:100"`
	Quantity      int    `gorm:"not null;default:1"`
	PriceCents    int64  `gorm:"not null;default:0"`
	DiscountCents int64  `gorm:"not null;default:0"`
	Currency      string `gorm:"not null;size:3;default:USD"`

	Frequency         string `gorm:"not null;size:20"`
	FrequencyInterval int    `gorm:"not null;default:1"`

	Status       string `gorm:"not null;size:20;index:idx_status"`
	PauseReason  *string `gorm:"size:500"`
	CancelReason *string `gorm:"size:500"`
	PausedAt     *time.Time
	CancelledAt  *time.Time
	AutoResumeAt *time.Time `gorm:"index:idx_auto_resume"`

	NextBillingDate  *time.Time `gorm:"index:idx_next_billing"`
	LastBillingDate  *time.Time
	BillingAnchorDay int `gorm:"not null;default:0"`

	SellingPlanID   *uint   `gorm:"index:idx_selling_plan"`
	SellingPlanName *string `gorm:"size:255"`

	CardLast4    string `gorm:"size:4"`
	CardBrand    string `gorm:"size:20"`
	CardExpMonth int    `gorm:"not null;default:0"`
	CardExpYear  int    `gorm:"not null;default:0"`

	TotalOrders     int   `gorm:"not null;default:0"`
	TotalSpentCents int64 `gorm:"not null;default:0"`
	SkippedOrders   int   `gorm:"not null;default:0"`

	LastSyncedAt *time.Time
	SyncError    *string `gorm:"size:1000"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
