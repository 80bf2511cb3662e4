package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/id"
)

// ParseSIDParam reads a prefixed short ID (sub_xxx, sf_xxx, ...) from a route
// parameter and checks its prefix before any handler touches the store. A
// wrong-prefix ID is a client error, not a not-found.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}
