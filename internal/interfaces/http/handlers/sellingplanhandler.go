package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/sellingplan/usecases"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type SellingPlanHandler struct {
	manageUC *usecases.ManagePlanUseCase
	applyUC  *usecases.ApplyPlanUseCase
	logger   logger.Interface
}

func NewSellingPlanHandler(
	manageUC *usecases.ManagePlanUseCase,
	applyUC *usecases.ApplyPlanUseCase,
) *SellingPlanHandler {
	return &SellingPlanHandler{
		manageUC: manageUC,
		applyUC:  applyUC,
		logger:   logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	Frequency         string   `json:"frequency" binding:"required"`
	FrequencyInterval int      `json:"frequency_interval" binding:"required,min=1"`
	DiscountType      string   `json:"discount_type" binding:"required,oneof=percentage fixed price"`
	DiscountValue     int64    `json:"discount_value" binding:"min=0"`
	ProductIDs        []string `json:"product_ids"`
}

func (h *SellingPlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.manageUC.Create(c.Request.Context(), usecases.CreatePlanCommand{
		Name:              req.Name,
		Description:       req.Description,
		Frequency:         req.Frequency,
		FrequencyInterval: req.FrequencyInterval,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		ProductIDs:        req.ProductIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "selling plan created")
}

type UpdatePlanRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Frequency         *string  `json:"frequency"`
	FrequencyInterval *int     `json:"frequency_interval"`
	DiscountType      *string  `json:"discount_type"`
	DiscountValue     *int64   `json:"discount_value"`
	ProductIDs        []string `json:"product_ids"`
}

func (h *SellingPlanHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSellingPlan, "selling plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.manageUC.Update(c.Request.Context(), usecases.UpdatePlanCommand{
		SID:               sid,
		Name:              req.Name,
		Description:       req.Description,
		Frequency:         req.Frequency,
		FrequencyInterval: req.FrequencyInterval,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		ProductIDs:        req.ProductIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "selling plan updated", result)
}

func (h *SellingPlanHandler) Toggle(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSellingPlan, "selling plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.manageUC.Toggle(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "selling plan toggled", result)
}

func (h *SellingPlanHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSellingPlan, "selling plan")
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

func (h *SellingPlanHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSellingPlan, "selling plan")
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

func (h *SellingPlanHandler) List(c *gin.Context) {
	result, err := h.manageUC.List(c.Request.Context(), c.Query("enabled") == "true")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type ApplyPlanRequest struct {
	SubscriptionSID string `json:"subscription_sid" binding:"required"`
}

func (h *SellingPlanHandler) Apply(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSellingPlan, "selling plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ApplyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.applyUC.Execute(c.Request.Context(), usecases.ApplyPlanCommand{
		PlanSID:         sid,
		SubscriptionSID: req.SubscriptionSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "selling plan applied", result)
}
