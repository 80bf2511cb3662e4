package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type SettingsDTO struct {
	MaxPauseDays            int    `json:"max_pause_days"`
	AllowCustomerPause      bool   `json:"allow_customer_pause"`
	AllowCustomerSkip       bool   `json:"allow_customer_skip"`
	CancellationFlowEnabled bool   `json:"cancellation_flow_enabled"`
	NotificationEmail       string `json:"notification_email,omitempty"`
}

type UpdateSettingsCommand struct {
	MaxPauseDays            *int
	AllowCustomerPause      *bool
	AllowCustomerSkip       *bool
	CancellationFlowEnabled *bool
	NotificationEmail       *string
}

// SettingsUseCase reads and writes the per-tenant settings singleton.
type SettingsUseCase struct {
	settingsRepo settings.Repository
	logger       logger.Interface
}

func NewSettingsUseCase(settingsRepo settings.Repository, logger logger.Interface) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (uc *SettingsUseCase) Get(ctx context.Context) (*SettingsDTO, error) {
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return toSettingsDTO(cfg), nil
}

// Update merges the provided fields into the stored settings and upserts the
// row. Missing fields keep their current values.
func (uc *SettingsUseCase) Update(ctx context.Context, cmd UpdateSettingsCommand) (*SettingsDTO, error) {
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg.Apply(settings.Update{
		MaxPauseDays:            cmd.MaxPauseDays,
		AllowCustomerPause:      cmd.AllowCustomerPause,
		AllowCustomerSkip:       cmd.AllowCustomerSkip,
		CancellationFlowEnabled: cmd.CancellationFlowEnabled,
		NotificationEmail:       cmd.NotificationEmail,
	})

	if err := uc.settingsRepo.Upsert(ctx, cfg); err != nil {
		uc.logger.Errorw("failed to save settings", "error", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	uc.logger.Infow("tenant settings updated")
	return toSettingsDTO(cfg), nil
}

func toSettingsDTO(s *settings.Settings) *SettingsDTO {
	return &SettingsDTO{
		MaxPauseDays:            s.MaxPauseDays,
		AllowCustomerPause:      s.AllowCustomerPause,
		AllowCustomerSkip:       s.AllowCustomerSkip,
		CancellationFlowEnabled: s.CancellationFlowEnabled,
		NotificationEmail:       s.NotificationEmail,
	}
}
