package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type serverBody struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (s *Server) HandlerListServers(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	servers, err := s.db.ListServersByProfile(profile.ID)
	if err != nil {
		log.Println("listing servers:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["servers"] = servers
	return c.JSON(http.StatusOK, resp)
}

// HandlerCreateServer creates a server along with its general channel and
// the creator's admin membership.
func (s *Server) HandlerCreateServer(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	body := new(serverBody)
	if err := c.Bind(body); err != nil || body.Name == "" {
		resp["error"] = "Name is required"
		return c.JSON(http.StatusBadRequest, resp)
	}

	server, err := s.db.CreateServerWithDefaults(profile.ID, body.Name, body.ImageURL, uuid.NewString())
	if err != nil {
		log.Println("creating server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	return c.JSON(http.StatusOK, server)
}

func (s *Server) HandlerUpdateServer(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.Param("serverId")
	server, err := s.db.GetServer(serverID)
	if err != nil {
		log.Println("fetching server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if server == nil || server.ProfileID != profile.ID {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	body := new(serverBody)
	if err := c.Bind(body); err != nil {
		resp["error"] = "Invalid request"
		return c.JSON(http.StatusBadRequest, resp)
	}

	updated, err := s.db.UpdateServer(server.ID, body.Name, body.ImageURL)
	if err != nil {
		log.Println("updating server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandlerDeleteServer(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.Param("serverId")
	server, err := s.db.GetServer(serverID)
	if err != nil {
		log.Println("fetching server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if server == nil || server.ProfileID != profile.ID {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	if err := s.db.DeleteServer(server.ID); err != nil {
		log.Println("deleting server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}

// HandlerRotateInviteCode replaces the server's invite code, invalidating
// every link minted from the old one.
func (s *Server) HandlerRotateInviteCode(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.Param("serverId")
	server, err := s.db.GetServer(serverID)
	if err != nil {
		log.Println("fetching server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if server == nil || server.ProfileID != profile.ID {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	updated, err := s.db.RotateInviteCode(server.ID, uuid.NewString())
	if err != nil {
		log.Println("rotating invite code:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	return c.JSON(http.StatusOK, updated)
}

// HandlerLeaveServer removes the caller's own membership. Owners cannot
// leave; they delete the server instead.
func (s *Server) HandlerLeaveServer(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.Param("serverId")
	server, err := s.db.GetServer(serverID)
	if err != nil {
		log.Println("fetching server:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if server == nil {
		resp["error"] = "Server not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if server.ProfileID == profile.ID {
		resp["error"] = "Cannot leave your own server"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, err := s.db.FindMember(server.ID, profile.ID)
	if err != nil {
		log.Println("finding member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil {
		resp["error"] = "Not a member of this server"
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := s.db.DeleteMember(member.ID); err != nil {
		log.Println("deleting member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}
