package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type ListActivitiesResult struct {
	Items    []*dto.ActivityDTO `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type ListActivitiesUseCase struct {
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	logger           logger.Interface
}

func NewListActivitiesUseCase(
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	logger logger.Interface,
) *ListActivitiesUseCase {
	return &ListActivitiesUseCase{
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		logger:           logger,
	}
}

func (uc *ListActivitiesUseCase) Execute(ctx context.Context, sid string, page, pageSize int) (*ListActivitiesResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	p := utils.ValidatePagination(page, pageSize)

	activities, total, err := uc.activityRepo.ListBySubscription(ctx, sub.ID(), p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list activities", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return &ListActivitiesResult{
		Items:    dto.ToActivityDTOs(activities),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
