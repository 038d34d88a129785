package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/database"
	"concord/internal/models"
)

// HandlerJoinByInvite resolves an invite link. It is a page route, so every
// outcome is a redirect: sign-in for anonymous callers, home for dead codes,
// the server page once the caller is a member. Joining twice is a no-op.
func (s *Server) HandlerJoinByInvite(c echo.Context) error {
	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		return c.Redirect(http.StatusFound, "/sign-in")
	}

	code := c.Param("inviteCode")
	if code == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	server, err := s.db.GetServerByInviteCode(code)
	if err != nil {
		log.Println("resolving invite code:", err)
		return c.Redirect(http.StatusFound, "/")
	}
	if server == nil {
		return c.Redirect(http.StatusFound, "/")
	}

	member, err := s.db.FindMember(server.ID, profile.ID)
	if err != nil {
		log.Println("finding member:", err)
		return c.Redirect(http.StatusFound, "/")
	}
	if member != nil {
		return c.Redirect(http.StatusFound, "/servers/"+database.BareID(server.ID))
	}

	if _, err := s.db.CreateMember(server.ID, profile.ID, models.RoleGuest); err != nil {
		log.Println("joining server:", err)
		return c.Redirect(http.StatusFound, "/")
	}

	return c.Redirect(http.StatusFound, "/servers/"+database.BareID(server.ID))
}
