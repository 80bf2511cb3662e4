package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/settings/usecases"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type SettingsHandler struct {
	settingsUC *usecases.SettingsUseCase
	logger     logger.Interface
}

func NewSettingsHandler(settingsUC *usecases.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: settingsUC,
		logger:     logger.NewLogger(),
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	result, err := h.settingsUC.Get(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type UpdateSettingsRequest struct {
	MaxPauseDays            *int    `json:"max_pause_days"`
	AllowCustomerPause      *bool   `json:"allow_customer_pause"`
	AllowCustomerSkip       *bool   `json:"allow_customer_skip"`
	CancellationFlowEnabled *bool   `json:"cancellation_flow_enabled"`
	NotificationEmail       *string `json:"notification_email"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.settingsUC.Update(c.Request.Context(), usecases.UpdateSettingsCommand{
		MaxPauseDays:            req.MaxPauseDays,
		AllowCustomerPause:      req.AllowCustomerPause,
		AllowCustomerSkip:       req.AllowCustomerSkip,
		CancellationFlowEnabled: req.CancellationFlowEnabled,
		NotificationEmail:       req.NotificationEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "settings updated", result)
}
