package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// errHandled marks a gate failure whose response has already been written.
// It must never reach echo; callers strip it with handled.
var errHandled = errors.New("response already written")

// reject writes an error response and returns errHandled so gate helpers
// always hand a non-nil error back to their callers.
func reject(c echo.Context, status int, message string) error {
	if err := c.JSON(status, map[string]any{"error": message}); err != nil {
		return err
	}
	return errHandled
}

// handled converts errHandled to nil so handlers can return gate failures
// directly without echo writing a second response.
func handled(err error) error {
	if errors.Is(err, errHandled) {
		return nil
	}
	return err
}

func (s *Server) HelloWorldHandler(c echo.Context) error {
	resp := map[string]string{
		"message": "Hello World",
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
