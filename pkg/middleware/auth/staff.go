package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/pkg/tokens"
)

const (
	ctxStaffID   = "staff_id"
	ctxStaffRole = "staff_role"
)

type StaffMiddleware struct {
	JWTSecret []byte
}

func NewStaffMiddleware(secret []byte) *StaffMiddleware {
	return &StaffMiddleware{JWTSecret: secret}
}

// OptionalStaff lets anonymous requests (the ordering kiosk) through but
// rejects a token that is present and invalid.
func (m *StaffMiddleware) OptionalStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return next(c)
		}
		if err := m.authenticate(c, raw); err != nil {
			return err
		}
		return next(c)
	}
}

func (m *StaffMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole()(next)
}

// RequireRole demands a valid staff token; with no roles given any staff
// role is accepted.
func (m *StaffMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			if err := m.authenticate(c, raw); err != nil {
				return err
			}
			if len(roles) > 0 {
				role, _ := c.Get(ctxStaffRole).(string)
				if !slices.Contains(roles, role) {
					return echo.NewHTTPError(http.StatusForbidden, "role not allowed")
				}
			}
			return next(c)
		}
	}
}

func (m *StaffMiddleware) authenticate(c echo.Context, raw string) error {
	claims, err := tokens.StaffClaimsFromToken(raw, m.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	staffID, err := claims.StaffID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	c.Set(ctxStaffID, staffID)
	c.Set(ctxStaffRole, claims.Role)
	return nil
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
	}
	if ck, err := c.Cookie("accessToken"); err == nil {
		return ck.Value
	}
	return ""
}

// StaffID returns the authenticated staff member, if any.
func StaffID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxStaffID).(uint)
	return id, ok
}
