package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/validation/usecases"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type ValidationHandler struct {
	runUC     *usecases.RunValidationUseCase
	autoFixUC *usecases.AutoFixUseCase
	queryUC   *usecases.ValidationQueryUseCase
	logger    logger.Interface
}

func NewValidationHandler(
	runUC *usecases.RunValidationUseCase,
	autoFixUC *usecases.AutoFixUseCase,
	queryUC *usecases.ValidationQueryUseCase,
) *ValidationHandler {
	return &ValidationHandler{
		runUC:     runUC,
		autoFixUC: autoFixUC,
		queryUC:   queryUC,
		logger:    logger.NewLogger(),
	}
}

// Run executes the full check battery synchronously and returns the run with
// its issues.
func (h *ValidationHandler) Run(c *gin.Context) {
	result, err := h.runUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "validation run completed", result)
}

func (h *ValidationHandler) ListRuns(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	result, err := h.queryUC.ListRecentRuns(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ValidationHandler) GetRun(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixValidationRun, "validation run")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	run, issues, err := h.queryUC.GetRun(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"run": run, "issues": issues})
}

func (h *ValidationHandler) ListIssues(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.queryUC.ListUnfixedIssues(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

type AutoFixRequest struct {
	IssueIDs []uint `json:"issue_ids" binding:"required,min=1"`
}

func (h *ValidationHandler) AutoFix(c *gin.Context) {
	var req AutoFixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.autoFixUC.Execute(c.Request.Context(), usecases.AutoFixCommand{
		IssueIDs: req.IssueIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "auto-fix completed", result)
}
