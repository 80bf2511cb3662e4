package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// SellingPlanModel is the persistence model for selling plans. ProductIDs is
// a JSON array of provider product identifiers.
type SellingPlanModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	TenantID    uint   `gorm:"not null;index:idx_tenant_plan"`
	Name        string `gorm:"not null;size:255"`
	Description string `gorm:"size:1000"`

	Frequency         string `gorm:"not null;size:20"`
	FrequencyInterval int    `gorm:"not null;default:1"`

	DiscountType  string `gorm:"not null;size:20"`
	DiscountValue int64  `gorm:"not null;default:0"`

	ProductIDs datatypes.JSON
	Enabled    bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SellingPlanModel) TableName() string {
	return constants.TableSellingPlans
}
