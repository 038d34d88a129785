package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/models"
)

type memberRoleBody struct {
	Role models.MemberRole `json:"role"`
}

// HandlerUpdateMemberRole changes another member's role. Only the server
// owner may do this, and never to themselves.
func (s *Server) HandlerUpdateMemberRole(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.QueryParam("serverId")
	if serverID == "" {
		resp["error"] = "Server ID missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

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

	body := new(memberRoleBody)
	if err := c.Bind(body); err != nil || !models.ValidMemberRole(body.Role) {
		resp["error"] = "Invalid role"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, err := s.db.GetMember(c.Param("memberId"))
	if err != nil {
		log.Println("fetching member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil || member.ServerID != server.ID {
		resp["error"] = "Member not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if member.ProfileID == profile.ID {
		resp["error"] = "Cannot change your own role"
		return c.JSON(http.StatusBadRequest, resp)
	}

	updated, err := s.db.UpdateMemberRole(member.ID, body.Role)
	if err != nil {
		log.Println("updating member role:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["server"] = server
	resp["member"] = updated
	return c.JSON(http.StatusOK, resp)
}

// HandlerKickMember removes a member from a server. Owner only, and owners
// cannot kick themselves.
func (s *Server) HandlerKickMember(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	serverID := c.QueryParam("serverId")
	if serverID == "" {
		resp["error"] = "Server ID missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

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

	member, err := s.db.GetMember(c.Param("memberId"))
	if err != nil {
		log.Println("fetching member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil || member.ServerID != server.ID {
		resp["error"] = "Member not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if member.ProfileID == profile.ID {
		resp["error"] = "Cannot kick yourself"
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := s.db.DeleteMember(member.ID); err != nil {
		log.Println("deleting member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["server"] = server
	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}
