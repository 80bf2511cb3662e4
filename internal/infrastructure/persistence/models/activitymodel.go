package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// ActivityModel is the persistence model for the append-only subscription
// audit trail. Rows are never updated or deleted.
type ActivityModel struct {
	ID             uint           `gorm:"primarykey"`
	SID            string         `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: act_xxx"`
	TenantID       uint           `gorm:"not null;index:idx_tenant_activity"`
	SubscriptionID uint           `gorm:"not null;index:idx_subscription_activity"`
	ActivityType   string         `gorm:"not null;size:50;index:idx_activity_type"`
	Description    string         `gorm:"size:1000"`
	ActorType      string         `gorm:"not null;size:20"`
	ActorID        string         `gorm:"size:100"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time `gorm:"index:idx_activity_created"`
}

func (ActivityModel) TableName() string {
	return constants.TableActivities
}
