package dto

import (
	"time"

	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/shared/mapper"
)

type RunDTO struct {
	SID          string     `json:"sid"`
	Status       string     `json:"status"`
	TotalChecked int        `json:"total_checked"`
	IssuesFound  int        `json:"issues_found"`
	IssuesFixed  int        `json:"issues_fixed"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type IssueDTO struct {
	SID            string     `json:"sid"`
	ID             uint       `json:"id"`
	RunSID         string     `json:"run_sid,omitempty"`
	SubscriptionID uint       `json:"subscription_id"`
	IssueType      string     `json:"issue_type"`
	Severity       string     `json:"severity"`
	Description    string     `json:"description,omitempty"`
	AutoFixable    bool       `json:"auto_fixable"`
	IsFixed        bool       `json:"is_fixed"`
	FixedAt        *time.Time `json:"fixed_at,omitempty"`
	FixedBy        *string    `json:"fixed_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToRunDTO(run *validation.Run) *RunDTO {
	if run == nil {
		return nil
	}

	return &RunDTO{
		SID:          run.SID(),
		Status:       string(run.Status()),
		TotalChecked: run.TotalChecked(),
		IssuesFound:  run.IssuesFound(),
		IssuesFixed:  run.IssuesFixed(),
		ErrorMessage: run.ErrorMessage(),
		StartedAt:    run.StartedAt(),
		CompletedAt:  run.CompletedAt(),
	}
}

func ToRunDTOs(runs []*validation.Run) []*RunDTO {
	return mapper.MapSlice(runs, ToRunDTO)
}

func ToIssueDTO(issue *validation.Issue) *IssueDTO {
	if issue == nil {
		return nil
	}

	return &IssueDTO{
		SID:            issue.SID(),
		ID:             issue.ID(),
		SubscriptionID: issue.SubscriptionID(),
		IssueType:      string(issue.Type()),
		Severity:       string(issue.Severity()),
		Description:    issue.Description(),
		AutoFixable:    issue.Type().AutoFixable(),
		IsFixed:        issue.IsFixed(),
		FixedAt:        issue.FixedAt(),
		FixedBy:        issue.FixedBy(),
		CreatedAt:      issue.CreatedAt(),
	}
}

func ToIssueDTOs(issues []*validation.Issue) []*IssueDTO {
	return mapper.MapSlice(issues, ToIssueDTO)
}
