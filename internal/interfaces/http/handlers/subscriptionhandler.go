package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/subscription/usecases"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/constants"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC         *usecases.CreateSubscriptionUseCase
	pauseUC          *usecases.PauseSubscriptionUseCase
	resumeUC         *usecases.ResumeSubscriptionUseCase
	cancelUC         *usecases.CancelSubscriptionUseCase
	skipUC           *usecases.SkipNextOrderUseCase
	updateUC         *usecases.UpdateSubscriptionUseCase
	getUC            *usecases.GetSubscriptionUseCase
	listUC           *usecases.ListSubscriptionsUseCase
	listActivitiesUC *usecases.ListActivitiesUseCase
	logger           logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	pauseUC *usecases.PauseSubscriptionUseCase,
	resumeUC *usecases.ResumeSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	skipUC *usecases.SkipNextOrderUseCase,
	updateUC *usecases.UpdateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	listActivitiesUC *usecases.ListActivitiesUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:         createUC,
		pauseUC:          pauseUC,
		resumeUC:         resumeUC,
		cancelUC:         cancelUC,
		skipUC:           skipUC,
		updateUC:         updateUC,
		getUC:            getUC,
		listUC:           listUC,
		listActivitiesUC: listActivitiesUC,
		logger:           logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	Provider               string     `json:"provider" binding:"required"`
	ProviderSubscriptionID string     `json:"provider_subscription_id"`
	CustomerID             string     `json:"customer_id" binding:"required"`
	CustomerEmail          string     `json:"customer_email"`
	CustomerName           string     `json:"customer_name"`
	ProductID              string     `json:"product_id" binding:"required"`
	VariantID              string     `json:"variant_id"`
	Quantity               int        `json:"quantity" binding:"required,min=1"`
	PriceCents             int64      `json:"price_cents" binding:"min=0"`
	DiscountCents          int64      `json:"discount_cents" binding:"min=0"`
	Currency               string     `json:"currency"`
	Frequency              string     `json:"frequency" binding:"required"`
	FrequencyInterval      int        `json:"frequency_interval" binding:"required,min=1"`
	Status                 string     `json:"status"`
	NextBillingDate        *time.Time `json:"next_billing_date"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		Provider:               req.Provider,
		ProviderSubscriptionID: req.ProviderSubscriptionID,
		CustomerID:             req.CustomerID,
		CustomerEmail:          req.CustomerEmail,
		CustomerName:           req.CustomerName,
		ProductID:              req.ProductID,
		VariantID:              req.VariantID,
		Quantity:               req.Quantity,
		PriceCents:             req.PriceCents,
		DiscountCents:          req.DiscountCents,
		Currency:               req.Currency,
		Frequency:              req.Frequency,
		FrequencyInterval:      req.FrequencyInterval,
		Status:                 req.Status,
		NextBillingDate:        req.NextBillingDate,
		Actor:                  actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "subscription created")
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		Status:     c.Query("status"),
		Provider:   c.Query("provider"),
		CustomerID: c.Query("customer_id"),
		ProductID:  c.Query("product_id"),
		Page:       p.Page,
		PageSize:   p.PageSize,
		SortBy:     c.Query("sort_by"),
		SortDesc:   c.Query("sort_dir") == "desc",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *SubscriptionHandler) Orders(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	orders, err := h.getUC.Orders(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", orders)
}

func (h *SubscriptionHandler) Activities(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listActivitiesUC.Execute(c.Request.Context(), sid, p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

type PauseRequest struct {
	Reason       string     `json:"reason"`
	AutoResumeAt *time.Time `json:"auto_resume_at"`
}

func (h *SubscriptionHandler) Pause(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.pauseUC.Execute(c.Request.Context(), usecases.PauseSubscriptionCommand{
		SID:          sid,
		Reason:       req.Reason,
		AutoResumeAt: req.AutoResumeAt,
		Actor:        actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription paused", result)
}

func (h *SubscriptionHandler) Resume(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resumeUC.Execute(c.Request.Context(), usecases.ResumeSubscriptionCommand{
		SID:   sid,
		Actor: actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription resumed", result)
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SID:    sid,
		Reason: req.Reason,
		Actor:  actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription cancelled", result)
}

func (h *SubscriptionHandler) SkipNextOrder(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.skipUC.Execute(c.Request.Context(), usecases.SkipNextOrderCommand{
		SID:   sid,
		Actor: actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "next order skipped", result)
}

type UpdateFrequencyRequest struct {
	Frequency string `json:"frequency" binding:"required"`
	Interval  int    `json:"interval" binding:"required,min=1"`
}

func (h *SubscriptionHandler) UpdateFrequency(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateFrequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateUC.UpdateFrequency(c.Request.Context(), usecases.UpdateFrequencyCommand{
		SID:       sid,
		Frequency: req.Frequency,
		Interval:  req.Interval,
		Actor:     actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "frequency updated", result)
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *SubscriptionHandler) UpdateQuantity(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateUC.UpdateQuantity(c.Request.Context(), usecases.UpdateQuantityCommand{
		SID:      sid,
		Quantity: req.Quantity,
		Actor:    actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "quantity updated", result)
}

type UpdatePricingRequest struct {
	PriceCents    int64 `json:"price_cents" binding:"min=0"`
	DiscountCents int64 `json:"discount_cents" binding:"min=0"`
}

func (h *SubscriptionHandler) UpdatePricing(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateUC.UpdatePricing(c.Request.Context(), usecases.UpdatePricingCommand{
		SID:           sid,
		PriceCents:    req.PriceCents,
		DiscountCents: req.DiscountCents,
		Actor:         actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "pricing updated", result)
}

type UpdatePaymentCardRequest struct {
	Last4    string `json:"last4" binding:"required,len=4"`
	Brand    string `json:"brand" binding:"required"`
	ExpMonth int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear  int    `json:"exp_year" binding:"required"`
}

func (h *SubscriptionHandler) UpdatePaymentCard(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePaymentCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateUC.UpdatePaymentCard(c.Request.Context(), usecases.UpdatePaymentCardCommand{
		SID:      sid,
		Last4:    req.Last4,
		Brand:    req.Brand,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		Actor:    actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "payment card updated", result)
}

// actorFromContext derives the audit actor from middleware-set context keys.
// Authenticated admin sessions act as admin; everything else is a customer
// request from the portal.
func actorFromContext(c *gin.Context) usecases.Actor {
	if _, exists := c.Get(constants.ContextKeyAdminID); exists {
		return usecases.Actor{Type: subscription.ActorAdmin, ID: c.GetString(constants.ContextKeyAdminEmail)}
	}
	return usecases.Actor{Type: subscription.ActorCustomer, ID: c.GetString(constants.ContextKeyActorID)}
}
