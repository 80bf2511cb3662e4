package models

import (
	"time"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// SubscriptionOrderModel is the persistence model for scheduled and billed
// charges.
type SubscriptionOrderModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: ord_xxx"`
	TenantID       uint   `gorm:"not null;index:idx_tenant_order"`
	SubscriptionID uint   `gorm:"not null;index:idx_subscription_order"`
	Status         string `gorm:"not null;size:20;index:idx_order_status"`
	AmountCents    int64  `gorm:"not null;default:0"`
	Currency       string `gorm:"not null;size:3;default:USD"`
	ScheduledAt    time.Time `gorm:"not null;index:idx_scheduled_at"`
	ProcessedAt    *time.Time
	FailureReason  *string `gorm:"size:1000"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SubscriptionOrderModel) TableName() string {
	return constants.TableSubscriptionOrds
}
