package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/auth"
)

type sessionLoginBody struct {
	IDToken string `json:"idToken"`
}

// HandlerSessionLogin exchanges an identity-provider ID token for a session
// cookie. The profile is created lazily on first sign-in.
func (s *Server) HandlerSessionLogin(c echo.Context) error {
	resp := make(map[string]any)

	body := new(sessionLoginBody)
	if err := c.Bind(body); err != nil || body.IDToken == "" {
		resp["error"] = "ID token is required"
		return c.JSON(http.StatusBadRequest, resp)
	}

	claims, err := s.tokens.VerifyIDToken(body.IDToken)
	if err != nil {
		log.Println("verifying id token:", err)
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	if _, err := s.auth.EnsureProfile(claims); err != nil {
		log.Println("bootstrapping profile:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	token, err := s.tokens.CreateSessionToken(claims.Subject)
	if err != nil {
		log.Println("creating session token:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	auth.WriteSessionCookie(c, token, s.tokens.SessionTTL(), s.cfg.Production)

	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) HandlerLogout(c echo.Context) error {
	auth.ClearSessionCookie(c, s.cfg.Production)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
