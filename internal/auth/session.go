package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const SessionCookie = "session"

// WriteSessionCookie sets the session credential: http-only, lax, and
// secure outside of local development.
func WriteSessionCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = SessionCookie
	cookie.Value = token
	cookie.Path = "/"
	cookie.MaxAge = int(ttl.Seconds())
	cookie.Expires = time.Now().Add(ttl)
	cookie.HttpOnly = true
	cookie.Secure = secure
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}

func ClearSessionCookie(c echo.Context, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = SessionCookie
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	cookie.HttpOnly = true
	cookie.Secure = secure
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
