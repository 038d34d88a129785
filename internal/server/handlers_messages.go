package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/models"
	"concord/internal/realtime"
)

// MessageBatch is how many messages one history page returns.
const MessageBatch = 10

type messageBody struct {
	Content string `json:"content"`
	FileURL string `json:"fileUrl"`
}

// channelAccess resolves the caller's membership and the target channel for
// the socket message routes. On failure it writes the response and returns
// a non-nil error; callers pass it through handled and stop.
func (s *Server) channelAccess(c echo.Context, profileID string) (*models.Member, *models.Channel, error) {
	serverID := c.QueryParam("serverId")
	if serverID == "" {
		return nil, nil, reject(c, http.StatusBadRequest, "Server ID missing")
	}
	channelID := c.QueryParam("channelId")
	if channelID == "" {
		return nil, nil, reject(c, http.StatusBadRequest, "Channel ID missing")
	}

	server, err := s.db.GetServer(serverID)
	if err != nil {
		log.Println("fetching server:", err)
		return nil, nil, reject(c, http.StatusInternalServerError, "Internal Error")
	}
	if server == nil {
		return nil, nil, reject(c, http.StatusNotFound, "Server not found")
	}

	member, err := s.db.FindMember(server.ID, profileID)
	if err != nil {
		log.Println("finding member:", err)
		return nil, nil, reject(c, http.StatusInternalServerError, "Internal Error")
	}
	if member == nil {
		return nil, nil, reject(c, http.StatusNotFound, "Member not found")
	}

	channel, err := s.db.GetChannel(channelID)
	if err != nil {
		log.Println("fetching channel:", err)
		return nil, nil, reject(c, http.StatusInternalServerError, "Internal Error")
	}
	if channel == nil || channel.ServerID != server.ID {
		return nil, nil, reject(c, http.StatusNotFound, "Channel not found")
	}

	return member, channel, nil
}

// HandlerChannelMessages returns one page of channel history, newest first.
// The cursor is the id of the oldest message from the previous page.
func (s *Server) HandlerChannelMessages(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	channelID := c.QueryParam("channelId")
	if channelID == "" {
		resp["error"] = "Channel ID missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	messages, err := s.db.ListChannelMessages(channelID, c.QueryParam("cursor"), MessageBatch)
	if err != nil {
		log.Println("listing messages:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	var nextCursor any
	if len(messages) == MessageBatch {
		nextCursor = messages[len(messages)-1].ID
	}

	resp["items"] = messages
	resp["nextCursor"] = nextCursor
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) HandlerCreateMessage(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	body := new(messageBody)
	if err := c.Bind(body); err != nil || body.Content == "" {
		resp["error"] = "Content missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, channel, err := s.channelAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.CreateMessage(channel.ID, member.ID, body.Content, body.FileURL)
	if err != nil {
		log.Println("creating message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ChannelStream(channel.ID), realtime.Event{
		Type:     realtime.Added,
		ID:       message.ID,
		Document: message,
	})

	return c.JSON(http.StatusOK, message)
}

// HandlerUpdateMessage edits message content. Only the author may edit.
func (s *Server) HandlerUpdateMessage(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	body := new(messageBody)
	if err := c.Bind(body); err != nil || body.Content == "" {
		resp["error"] = "Content missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	member, channel, err := s.channelAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.GetMessage(c.Param("messageId"))
	if err != nil {
		log.Println("fetching message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if message == nil || message.ChannelID != channel.ID || message.Deleted {
		resp["error"] = "Message not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if message.MemberID != member.ID {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	updated, err := s.db.UpdateMessageContent(message.ID, body.Content)
	if err != nil {
		log.Println("updating message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ChannelStream(channel.ID), realtime.Event{
		Type:     realtime.Modified,
		ID:       updated.ID,
		Document: updated,
	})

	return c.JSON(http.StatusOK, updated)
}

// HandlerDeleteMessage soft-deletes a message. The author, admins and
// moderators may delete; the document stays behind as a placeholder.
func (s *Server) HandlerDeleteMessage(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	member, channel, err := s.channelAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.GetMessage(c.Param("messageId"))
	if err != nil {
		log.Println("fetching message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if message == nil || message.ChannelID != channel.ID || message.Deleted {
		resp["error"] = "Message not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if message.MemberID != member.ID && !member.Role.CanModerate() {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	deleted, err := s.db.SoftDeleteMessage(message.ID)
	if err != nil {
		log.Println("deleting message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ChannelStream(channel.ID), realtime.Event{
		Type:     realtime.Modified,
		ID:       deleted.ID,
		Document: deleted,
	})

	return c.JSON(http.StatusOK, deleted)
}
