package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// SaveFlowModel is the persistence model for retention flows. Steps, offers
// and trigger conditions are stored as validated JSON blobs.
type SaveFlowModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sf_xxx"`
	TenantID    uint   `gorm:"not null;index:idx_tenant_flow"`
	Name        string `gorm:"not null;size:255"`
	Description string `gorm:"size:1000"`
	Priority    int    `gorm:"not null;default:0;index:idx_flow_priority"`
	Enabled     bool   `gorm:"not null;default:true"`

	TriggerConditions datatypes.JSON `gorm:"not null"`
	Steps             datatypes.JSON `gorm:"not null"`
	Offers            datatypes.JSON `gorm:"not null"`

	TotalTriggered    int   `gorm:"not null;default:0"`
	TotalSaved        int   `gorm:"not null;default:0"`
	RevenueSavedCents int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SaveFlowModel) TableName() string {
	return constants.TableSaveFlows
}

// SaveAttemptModel is the persistence model for save attempts.
type SaveAttemptModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sa_xxx"`
	TenantID       uint   `gorm:"not null;index:idx_tenant_attempt"`
	FlowID         uint   `gorm:"not null;index:idx_flow_attempt"`
	SubscriptionID uint   `gorm:"not null;index:idx_subscription_attempt"`

	Outcome           string  `gorm:"not null;size:20;index:idx_attempt_outcome"`
	OfferAccepted     *string `gorm:"size:50"`
	CancelReason      *string `gorm:"size:500"`
	RevenueSavedCents int64   `gorm:"not null;default:0"`

	StartedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

func (SaveAttemptModel) TableName() string {
	return constants.TableSaveAttempts
}
