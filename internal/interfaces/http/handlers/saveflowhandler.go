package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/saveflow/usecases"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type SaveFlowHandler struct {
	manageUC    *usecases.ManageFlowUseCase
	triggerUC   *usecases.TriggerFlowUseCase
	completeUC  *usecases.CompleteAttemptUseCase
	attemptsUC  *usecases.AttemptQueryUseCase
	analyticsUC *usecases.FlowAnalyticsUseCase
	logger      logger.Interface
}

func NewSaveFlowHandler(
	manageUC *usecases.ManageFlowUseCase,
	triggerUC *usecases.TriggerFlowUseCase,
	completeUC *usecases.CompleteAttemptUseCase,
	attemptsUC *usecases.AttemptQueryUseCase,
	analyticsUC *usecases.FlowAnalyticsUseCase,
) *SaveFlowHandler {
	return &SaveFlowHandler{
		manageUC:    manageUC,
		triggerUC:   triggerUC,
		completeUC:  completeUC,
		attemptsUC:  attemptsUC,
		analyticsUC: analyticsUC,
		logger:      logger.NewLogger(),
	}
}

type CreateFlowRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Description string                     `json:"description"`
	Priority    int                        `json:"priority"`
	Trigger     saveflow.TriggerConditions `json:"trigger" binding:"required"`
	Steps       saveflow.StepList          `json:"steps" binding:"required"`
	Offers      saveflow.OfferList         `json:"offers"`
}

func (h *SaveFlowHandler) Create(c *gin.Context) {
	var req CreateFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.manageUC.Create(c.Request.Context(), usecases.CreateFlowCommand{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Trigger:     req.Trigger,
		Steps:       req.Steps,
		Offers:      req.Offers,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "save flow created")
}

type UpdateFlowRequest struct {
	Name        *string                     `json:"name"`
	Description *string                     `json:"description"`
	Priority    *int                        `json:"priority"`
	Trigger     *saveflow.TriggerConditions `json:"trigger"`
	Steps       *saveflow.StepList          `json:"steps"`
	Offers      *saveflow.OfferList         `json:"offers"`
}

func (h *SaveFlowHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveFlow, "save flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.manageUC.Update(c.Request.Context(), usecases.UpdateFlowCommand{
		SID:         sid,
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Trigger:     req.Trigger,
		Steps:       req.Steps,
		Offers:      req.Offers,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "save flow updated", result)
}

func (h *SaveFlowHandler) Toggle(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveFlow, "save flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.manageUC.Toggle(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "save flow toggled", result)
}

func (h *SaveFlowHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveFlow, "save flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.manageUC.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func (h *SaveFlowHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveFlow, "save flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.manageUC.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SaveFlowHandler) List(c *gin.Context) {
	result, err := h.manageUC.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SaveFlowHandler) ListAttempts(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveFlow, "save flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.attemptsUC.ListByFlow(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SaveFlowHandler) Analytics(c *gin.Context) {
	result, err := h.analyticsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type TriggerFlowRequest struct {
	SubscriptionSID string `json:"subscription_sid" binding:"required"`
	Event           string `json:"event"`
}

// Trigger starts a save flow for a subscription the customer is about to
// cancel. This is the portal-facing entry point.
func (h *SaveFlowHandler) Trigger(c *gin.Context) {
	var req TriggerFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.triggerUC.Execute(c.Request.Context(), usecases.TriggerFlowCommand{
		SubscriptionSID: req.SubscriptionSID,
		Event:           req.Event,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "save flow triggered", result)
}

type CompleteAttemptRequest struct {
	Outcome            string  `json:"outcome" binding:"required,oneof=saved cancelled"`
	AcceptedOfferIndex *int    `json:"accepted_offer_index"`
	CancelReason       *string `json:"cancel_reason"`
}

func (h *SaveFlowHandler) CompleteAttempt(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSaveAttempt, "save attempt")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.completeUC.Execute(c.Request.Context(), usecases.CompleteAttemptCommand{
		AttemptSID:         sid,
		Outcome:            saveflow.Outcome(req.Outcome),
		AcceptedOfferIndex: req.AcceptedOfferIndex,
		CancelReason:       req.CancelReason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "save attempt completed", result)
}
