package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/application/admin/usecases"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type AuthHandler struct {
	authUC *usecases.AuthUseCase
	logger logger.Interface
}

func NewAuthHandler(authUC *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger.NewLogger(),
	}
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	TenantSlug string `json:"tenant_slug" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), usecases.LoginCommand{
		Email:      req.Email,
		Password:   req.Password,
		TenantSlug: req.TenantSlug,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}
