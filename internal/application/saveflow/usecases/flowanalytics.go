package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/retain-hq/retain/internal/application/saveflow/dto"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// FlowAnalyticsUseCase aggregates save-flow effectiveness: per-flow save
// rates plus the offer-acceptance breakdown across completed attempts.
type FlowAnalyticsUseCase struct {
	flowRepo    saveflow.Repository
	attemptRepo saveflow.AttemptRepository
	logger      logger.Interface
}

func NewFlowAnalyticsUseCase(
	flowRepo saveflow.Repository,
	attemptRepo saveflow.AttemptRepository,
	logger logger.Interface,
) *FlowAnalyticsUseCase {
	return &FlowAnalyticsUseCase{
		flowRepo:    flowRepo,
		attemptRepo: attemptRepo,
		logger:      logger,
	}
}

func (uc *FlowAnalyticsUseCase) Execute(ctx context.Context) (*dto.AnalyticsDTO, error) {
	flows, err := uc.flowRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list save flows", "error", err)
		return nil, fmt.Errorf("failed to list save flows: %w", err)
	}

	result := &dto.AnalyticsDTO{
		Flows:           make([]dto.FlowStatsDTO, 0, len(flows)),
		OfferAcceptance: []dto.OfferAcceptanceDTO{},
	}

	for _, flow := range flows {
		result.TotalTriggered += flow.TotalTriggered()
		result.TotalSaved += flow.TotalSaved()
		result.RevenueSavedCents += flow.RevenueSavedCents()

		result.Flows = append(result.Flows, dto.FlowStatsDTO{
			FlowSID:           flow.SID(),
			FlowName:          flow.Name(),
			Enabled:           flow.Enabled(),
			TotalTriggered:    flow.TotalTriggered(),
			TotalSaved:        flow.TotalSaved(),
			RevenueSavedCents: flow.RevenueSavedCents(),
			SaveRate:          flow.SaveRate(),
		})
	}

	// A flow that never triggered has a save rate of zero, so the overall
	// rate is likewise zero rather than undefined.
	if result.TotalTriggered > 0 {
		result.OverallSaveRate = float64(result.TotalSaved) / float64(result.TotalTriggered)
	}

	acceptance, err := uc.offerAcceptance(ctx)
	if err != nil {
		return nil, err
	}
	result.OfferAcceptance = acceptance

	return result, nil
}

func (uc *FlowAnalyticsUseCase) offerAcceptance(ctx context.Context) ([]dto.OfferAcceptanceDTO, error) {
	attempts, err := uc.attemptRepo.ListCompletedWithOffer(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list completed attempts", "error", err)
		return nil, fmt.Errorf("failed to list completed attempts: %w", err)
	}

	byOffer := make(map[string]*dto.OfferAcceptanceDTO)
	for _, attempt := range attempts {
		if attempt.OfferAccepted() == nil {
			continue
		}
		key := *attempt.OfferAccepted()
		row, ok := byOffer[key]
		if !ok {
			row = &dto.OfferAcceptanceDTO{Offer: key}
			byOffer[key] = row
		}
		row.Accepted++
		row.RevenueSavedCents += attempt.RevenueSavedCents()
	}

	rows := make([]dto.OfferAcceptanceDTO, 0, len(byOffer))
	for _, row := range byOffer {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accepted != rows[j].Accepted {
			return rows[i].Accepted > rows[j].Accepted
		}
		return rows[i].Offer < rows[j].Offer
	})
	return rows, nil
}
