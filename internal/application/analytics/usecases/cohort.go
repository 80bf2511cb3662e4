package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/retain-hq/retain/internal/application/analytics/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/biztime"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

const maxCohortMonths = 24

// CohortUseCase groups subscriptions by signup month and reports how much of
// each cohort is still active or paused today. Cancelled and expired records
// count against retention; paused ones do not, since they still bill once
// resumed.
type CohortUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewCohortUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *CohortUseCase {
	return &CohortUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *CohortUseCase) Execute(ctx context.Context, months int) (*dto.CohortReportDTO, error) {
	if months <= 0 {
		return nil, errors.NewValidationError("cohort window must cover at least one month")
	}
	if months > maxCohortMonths {
		months = maxCohortMonths
	}

	subs, err := uc.subscriptionRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions for cohort report", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	cutoff := biztime.StartOfMonth(biztime.NowUTC()).AddDate(0, -(months - 1), 0)
	byMonth := make(map[time.Time]*dto.CohortDTO)
	for _, sub := range subs {
		month := biztime.StartOfMonth(sub.CreatedAt())
		if month.Before(cutoff) {
			continue
		}
		cohort, ok := byMonth[month]
		if !ok {
			cohort = &dto.CohortDTO{Month: month.Format("2006-01")}
			byMonth[month] = cohort
		}
		cohort.Size++
		switch sub.Status() {
		case vo.StatusActive, vo.StatusPaused:
			cohort.Retained++
		}
	}

	report := &dto.CohortReportDTO{
		Months:     months,
		ComputedAt: biztime.NowUTC(),
		Cohorts:    make([]dto.CohortDTO, 0, len(byMonth)),
	}
	for _, cohort := range byMonth {
		if cohort.Size > 0 {
			cohort.RetentionRate = float64(cohort.Retained) / float64(cohort.Size)
		}
		report.Cohorts = append(report.Cohorts, *cohort)
	}
	sort.Slice(report.Cohorts, func(i, j int) bool {
		return report.Cohorts[i].Month < report.Cohorts[j].Month
	})
	return report, nil
}
