package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/analytics/usecases"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type AnalyticsHandler struct {
	revenueUC *usecases.RevenueUseCase
	churnUC   *usecases.ChurnUseCase
	cohortUC  *usecases.CohortUseCase
	logger    logger.Interface
}

func NewAnalyticsHandler(revenueUC *usecases.RevenueUseCase, churnUC *usecases.ChurnUseCase, cohortUC *usecases.CohortUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		revenueUC: revenueUC,
		churnUC:   churnUC,
		cohortUC:  cohortUC,
		logger:    logger.NewLogger(),
	}
}

func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	result, err := h.revenueUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Churn reports cancellations over a window. Defaults to the trailing 30
// days when no window is supplied.
func (h *AnalyticsHandler) Churn(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid from timestamp, expected RFC 3339")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid to timestamp, expected RFC 3339")
			return
		}
		to = parsed
	}

	result, err := h.churnUC.Execute(c.Request.Context(), from, to)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Cohorts groups the population by signup month. Defaults to the trailing
// twelve months.
func (h *AnalyticsHandler) Cohorts(c *gin.Context) {
	months := 12
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid months value, expected an integer")
			return
		}
		months = parsed
	}
	result, err := h.cohortUC.Execute(c.Request.Context(), months)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) StatusCounts(c *gin.Context) {
	result, err := h.churnUC.StatusCounts(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
