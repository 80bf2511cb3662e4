package models

import (
	"time"

	"github.com/retain-hq/retain/internal/shared/constants"
)

// ValidationRunModel is the persistence model for validation runs.
type ValidationRunModel struct {
	ID           uint    `gorm:"primarykey"`
	SID          string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: vr_xxx"`
	TenantID     uint    `gorm:"not null;index:idx_tenant_run"`
	Status       string  `gorm:"not null;size:20"`
	TotalChecked int     `gorm:"not null;default:0"`
	IssuesFound  int     `gorm:"not null;default:0"`
	IssuesFixed  int     `gorm:"not null;default:0"`
	ErrorMessage *string `gorm:"size:1000"`
	StartedAt    time.Time `gorm:"not null;index:idx_run_started"`
	CompletedAt  *time.Time
}

func (ValidationRunModel) TableName() string {
	return constants.TableValidationRuns
}

// ValidationIssueModel is the persistence model for validation issues.
type ValidationIssueModel struct {
	ID             uint    `gorm:"primarykey"`
	SID            string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: vi_xxx"`
	TenantID       uint    `gorm:"not null;index:idx_tenant_issue"`
	RunID          uint    `gorm:"not null;index:idx_run_issue"`
	SubscriptionID uint    `gorm:"not null;index:idx_subscription_issue"`
	IssueType      string  `gorm:"not null;size:50;index:idx_issue_type"`
	Severity       string  `gorm:"not null;size:10"`
	Description    string  `gorm:"size:1000"`
	IsFixed        bool    `gorm:"not null;default:false;index:idx_issue_fixed"`
	FixedAt        *time.Time
	FixedBy        *string `gorm:"size:100"`
	CreatedAt      time.Time
}

func (ValidationIssueModel) TableName() string {
	return constants.TableValidationIssues
}
