package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

type CreateSubscriptionCommand struct {
	Provider               string
	ProviderSubscriptionID string
	CustomerID             string
	CustomerEmail          string
	CustomerName           string
	ProductID              string
	VariantID              string
	Quantity               int
	PriceCents             int64
	DiscountCents          int64
	Currency               string
	Frequency              string
	FrequencyInterval      int
	Status                 string
	NextBillingDate        *time.Time
	Actor                  Actor
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	publisher events.Publisher,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant in context")
	}

	provider, err := vo.ParseProvider(cmd.Provider)
	if err != nil {
		return nil, err
	}
	frequency, err := vo.ParseFrequency(cmd.Frequency)
	if err != nil {
		return nil, err
	}

	sub, err := subscription.NewSubscription(subscription.Params{
		TenantID:               tenantID,
		Provider:               provider,
		ProviderSubscriptionID: cmd.ProviderSubscriptionID,
		CustomerID:             cmd.CustomerID,
		CustomerEmail:          cmd.CustomerEmail,
		CustomerName:           cmd.CustomerName,
		ProductID:              cmd.ProductID,
		VariantID:              cmd.VariantID,
		Quantity:               cmd.Quantity,
		PriceCents:             cmd.PriceCents,
		DiscountCents:          cmd.DiscountCents,
		Currency:               cmd.Currency,
		Frequency:              frequency,
		FrequencyInterval:      cmd.FrequencyInterval,
		Status:                 vo.Status(cmd.Status),
		NextBillingDate:        cmd.NextBillingDate,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "customer_id", cmd.CustomerID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, tenantID, sub.ID(),
		subscription.ActivityTypeCreated, fmt.Sprintf("subscription created from %s", provider), cmd.Actor, nil)

	uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventCreated, sub, ""))

	uc.logger.Infow("subscription created",
		"sid", sub.SID(),
		"customer_id", sub.CustomerID(),
		"provider", sub.Provider(),
	)

	return dto.ToSubscriptionDTO(sub), nil
}
