package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type ListSubscriptionsQuery struct {
	Status     string
	Provider   string
	CustomerID string
	ProductID  string
	Page       int
	PageSize   int
	SortBy     string
	SortDesc   bool
}

type ListSubscriptionsResult struct {
	Items    []*dto.SubscriptionDTO `json:"items"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	page := utils.ValidatePagination(query.Page, query.PageSize)

	filter := subscription.Filter{
		Page:     page.Page,
		PageSize: page.PageSize,
		SortBy:   query.SortBy,
		SortDesc: query.SortDesc,
	}

	if query.Status != "" {
		status := vo.Status(query.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status filter: %s", query.Status)
		}
		filter.Status = &status
	}
	if query.Provider != "" {
		provider, err := vo.ParseProvider(query.Provider)
		if err != nil {
			return nil, err
		}
		filter.Provider = &provider
	}
	if query.CustomerID != "" {
		filter.CustomerID = &query.CustomerID
	}
	if query.ProductID != "" {
		filter.ProductID = &query.ProductID
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsResult{
		Items:    dto.ToSubscriptionDTOs(subs),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
