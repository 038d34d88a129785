package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/models"
)

type channelBody struct {
	Name string             `json:"name"`
	Type models.ChannelType `json:"type"`
}

// HandlerCreateChannel adds a channel to a server. Admins and moderators
// only, and "general" is reserved.
func (s *Server) HandlerCreateChannel(c echo.Context) error {
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

	body := new(channelBody)
	if err := c.Bind(body); err != nil || body.Name == "" || !models.ValidChannelType(body.Type) {
		resp["error"] = "Invalid channel"
		return c.JSON(http.StatusBadRequest, resp)
	}
	if body.Name == models.GeneralChannel {
		resp["error"] = "Name cannot be 'general'"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, err := s.db.FindMember(serverID, profile.ID)
	if err != nil {
		log.Println("finding member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil || !member.Role.CanModerate() {
		resp["error"] = "Forbidden"
		return c.JSON(http.StatusForbidden, resp)
	}

	channel, err := s.db.CreateChannel(member.ServerID, profile.ID, body.Name, body.Type)
	if err != nil {
		log.Println("creating channel:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	return c.JSON(http.StatusOK, channel)
}

func (s *Server) HandlerUpdateChannel(c echo.Context) error {
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

	body := new(channelBody)
	if err := c.Bind(body); err != nil || body.Name == "" || !models.ValidChannelType(body.Type) {
		resp["error"] = "Invalid channel"
		return c.JSON(http.StatusBadRequest, resp)
	}
	if body.Name == models.GeneralChannel {
		resp["error"] = "Name cannot be 'general'"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, err := s.db.FindMember(serverID, profile.ID)
	if err != nil {
		log.Println("finding member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil || !member.Role.CanModerate() {
		resp["error"] = "Forbidden"
		return c.JSON(http.StatusForbidden, resp)
	}

	channel, err := s.db.GetChannel(c.Param("channelId"))
	if err != nil {
		log.Println("fetching channel:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if channel == nil || channel.Name == models.GeneralChannel {
		resp["error"] = "Cannot edit general channel"
		return c.JSON(http.StatusBadRequest, resp)
	}

	updated, err := s.db.UpdateChannel(channel.ID, body.Name, body.Type)
	if err != nil {
		log.Println("updating channel:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandlerDeleteChannel(c echo.Context) error {
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

	member, err := s.db.FindMember(serverID, profile.ID)
	if err != nil {
		log.Println("finding member:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if member == nil || !member.Role.CanModerate() {
		resp["error"] = "Forbidden"
		return c.JSON(http.StatusForbidden, resp)
	}

	channel, err := s.db.GetChannel(c.Param("channelId"))
	if err != nil {
		log.Println("fetching channel:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if channel == nil || channel.Name == models.GeneralChannel {
		resp["error"] = "Cannot delete general channel"
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := s.db.DeleteChannel(channel.ID); err != nil {
		log.Println("deleting channel:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}
