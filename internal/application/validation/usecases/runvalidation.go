package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/application/validation/dto"
	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

type RunValidationResult struct {
	Run    *dto.RunDTO     `json:"run"`
	Issues []*dto.IssueDTO `json:"issues"`
}

// RunValidationUseCase executes the fixed check battery against the tenant's
// full subscription population and persists the run with its issues.
type RunValidationUseCase struct {
	runRepo          validation.RunRepository
	issueRepo        validation.IssueRepository
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	settingsRepo     settings.Repository
	logger           logger.Interface
}

func NewRunValidationUseCase(
	runRepo validation.RunRepository,
	issueRepo validation.IssueRepository,
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	settingsRepo settings.Repository,
	logger logger.Interface,
) *RunValidationUseCase {
	return &RunValidationUseCase{
		runRepo:          runRepo,
		issueRepo:        issueRepo,
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		settingsRepo:     settingsRepo,
		logger:           logger,
	}
}

func (uc *RunValidationUseCase) Execute(ctx context.Context) (*RunValidationResult, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant in context")
	}

	run, err := validation.NewRun(tenantID)
	if err != nil {
		return nil, err
	}
	if err := uc.runRepo.Create(ctx, run); err != nil {
		uc.logger.Errorw("failed to create validation run", "error", err)
		return nil, fmt.Errorf("failed to create validation run: %w", err)
	}

	dataset, err := uc.loadDataset(ctx)
	if err != nil {
		// The run row already exists; keep it with the failure recorded
		// rather than leaving it stuck in running.
		run.Fail(err.Error())
		if uerr := uc.runRepo.Update(ctx, run); uerr != nil {
			uc.logger.Errorw("failed to persist failed run", "error", uerr, "run_sid", run.SID())
		}
		return nil, fmt.Errorf("failed to load validation dataset: %w", err)
	}

	var issues []*validation.Issue
	for _, check := range checkRegistry {
		findings, examined := check.fn(dataset)
		run.RecordCheck(examined, len(findings))

		for _, f := range findings {
			issue, err := validation.NewIssue(tenantID, run.ID(), f.SubscriptionID, f.Type, f.Description)
			if err != nil {
				uc.logger.Errorw("failed to build issue",
					"error", err, "check", check.name, "subscription_id", f.SubscriptionID)
				continue
			}
			issues = append(issues, issue)
		}
	}

	if len(issues) > 0 {
		if err := uc.issueRepo.CreateBatch(ctx, issues); err != nil {
			run.Fail(fmt.Sprintf("failed to persist issues: %v", err))
			if uerr := uc.runRepo.Update(ctx, run); uerr != nil {
				uc.logger.Errorw("failed to persist failed run", "error", uerr, "run_sid", run.SID())
			}
			return nil, fmt.Errorf("failed to persist validation issues: %w", err)
		}
	}

	run.Complete()
	if err := uc.runRepo.Update(ctx, run); err != nil {
		uc.logger.Errorw("failed to complete validation run", "error", err, "run_sid", run.SID())
		return nil, fmt.Errorf("failed to complete validation run: %w", err)
	}

	uc.logger.Infow("validation run completed",
		"run_sid", run.SID(),
		"total_checked", run.TotalChecked(),
		"issues_found", run.IssuesFound(),
	)

	return &RunValidationResult{
		Run:    dto.ToRunDTO(run),
		Issues: dto.ToIssueDTOs(issues),
	}, nil
}

func (uc *RunValidationUseCase) loadDataset(ctx context.Context) (*Dataset, error) {
	subs, err := uc.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	scheduledIDs, err := uc.orderRepo.SubscriptionIDsWithScheduledOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled order subscriptions: %w", err)
	}
	scheduled := make(map[uint]bool, len(scheduledIDs))
	for _, id := range scheduledIDs {
		scheduled[id] = true
	}

	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &Dataset{
		Subscriptions:        subs,
		ScheduledOrderSubIDs: scheduled,
		MaxPauseDays:         cfg.MaxPauseDays,
		Now:                  time.Now().UTC(),
	}, nil
}
