package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/constants"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
	"github.com/retain-hq/retain/internal/shared/utils"
)

type TenantMiddleware struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewTenantMiddleware(tenantRepo tenant.Repository, logger logger.Interface) *TenantMiddleware {
	return &TenantMiddleware{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// ResolveTenant establishes the tenant scope for the request. Admin sessions
// carry the slug in their token claims; the customer portal sends an
// X-Tenant-Slug header. The token claim wins when both are present.
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetString(constants.ContextKeyTenantSlug)
		if slug == "" {
			slug = c.GetHeader("X-Tenant-Slug")
		}
		if slug == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "missing tenant")
			c.Abort()
			return
		}

		t, err := m.tenantRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			m.logger.Errorw("failed to resolve tenant", "error", err, "slug", slug)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve tenant")
			c.Abort()
			return
		}
		if t == nil || !t.Active {
			utils.ErrorResponse(c, http.StatusNotFound, "unknown tenant")
			c.Abort()
			return
		}

		ctx := tenantctx.WithTenant(c.Request.Context(), tenantctx.Tenant{ID: t.ID, Slug: t.Slug})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
