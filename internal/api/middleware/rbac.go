package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// Policy maps "METHOD /route/path" to the roles allowed to call it. The path
// is the registered route pattern, e.g. "GET /employees/:id".
type Policy map[string][]domain.Role

// Rule returns the policy key for a method and route pattern.
func Rule(method, path string) string {
	return method + " " + path
}

var everyone = []domain.Role{domain.RoleAdmin, domain.RoleModerator, domain.RoleReadOnly}

// DefaultPolicy is the access table of the employee API.
var DefaultPolicy = Policy{
	Rule(http.MethodGet, "/employees"):                        everyone,
	Rule(http.MethodGet, "/employees/:id"):                    {domain.RoleAdmin, domain.RoleReadOnly},
	Rule(http.MethodPost, "/employees"):                       {domain.RoleAdmin, domain.RoleModerator},
	Rule(http.MethodPut, "/employees/:id"):                    {domain.RoleAdmin, domain.RoleModerator},
	Rule(http.MethodDelete, "/employees/:id"):                 {domain.RoleAdmin},
	Rule(http.MethodGet, "/employees/inactive"):               everyone,
	Rule(http.MethodGet, "/employees/department/:department"): everyone,
	Rule(http.MethodGet, "/employees/salary"):                 everyone,
	Rule(http.MethodGet, "/employees/search"):                 everyone,
	Rule(http.MethodPost, "/auth/logout"):                     everyone,
}

// Allows reports whether role may call the route. Unlisted routes deny.
func (p Policy) Allows(method, path string, role domain.Role) bool {
	for _, r := range p[Rule(method, path)] {
		if r == role {
			return true
		}
	}
	return false
}

// RBAC enforces the policy against the role set by Auth. Denials return
// domain.ErrForbidden for the central error handler to render.
func RBAC(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(domain.Role)
			if !policy.Allows(c.Request().Method, c.Path(), role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
