package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"concord/internal/auth"
)

var publicPaths = []string{
	"/api/auth/session",
	"/api/auth/logout",
	"/sign-in",
	"/sign-up",
}

func isPublicPath(path string) bool {
	if path == "/" || path == "/health" {
		return true
	}
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// SessionGate rejects requests without a session cookie before they reach a
// handler: 401 for API and socket paths, a redirect to sign-in for pages.
// Handlers still resolve and verify the cookie themselves; this gate only
// keeps anonymous traffic out.
func (s *Server) SessionGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if isPublicPath(path) {
			return next(c)
		}

		cookie, err := c.Cookie(auth.SessionCookie)
		if err != nil || cookie.Value == "" {
			if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws/") {
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
			}
			return c.Redirect(http.StatusFound, "/sign-in")
		}

		return next(c)
	}
}
