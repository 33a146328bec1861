package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empmanagement/employee-api/internal/api/middleware"
	"github.com/empmanagement/employee-api/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth, which is treated as unauthenticated.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil || claims.Role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
