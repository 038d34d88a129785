package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"concord/internal/models"
	"concord/internal/realtime"
)

// conversationAccess resolves the conversation and the caller's side of it.
// Callers that are not a party to the conversation get the same 404 as a
// missing conversation. On failure it writes the response and returns a
// non-nil error; callers pass it through handled and stop.
func (s *Server) conversationAccess(c echo.Context, profileID string) (*models.Member, *models.Conversation, error) {
	conversationID := c.QueryParam("conversationId")
	if conversationID == "" {
		return nil, nil, reject(c, http.StatusBadRequest, "Conversation ID missing")
	}

	conversation, err := s.db.GetConversation(conversationID)
	if err != nil {
		log.Println("fetching conversation:", err)
		return nil, nil, reject(c, http.StatusInternalServerError, "Internal Error")
	}
	if conversation == nil {
		return nil, nil, reject(c, http.StatusNotFound, "Conversation not found")
	}

	for _, memberID := range []string{conversation.MemberOneID, conversation.MemberTwoID} {
		member, err := s.db.GetMember(memberID)
		if err != nil {
			log.Println("fetching member:", err)
			return nil, nil, reject(c, http.StatusInternalServerError, "Internal Error")
		}
		if member != nil && member.ProfileID == profileID {
			return member, conversation, nil
		}
	}

	return nil, nil, reject(c, http.StatusNotFound, "Conversation not found")
}

// HandlerDirectMessages returns one page of conversation history, newest
// first, using the same cursor scheme as channel history.
func (s *Server) HandlerDirectMessages(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	conversationID := c.QueryParam("conversationId")
	if conversationID == "" {
		resp["error"] = "Conversation ID missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	messages, err := s.db.ListDirectMessages(conversationID, c.QueryParam("cursor"), MessageBatch)
	if err != nil {
		log.Println("listing direct messages:", err)
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

func (s *Server) HandlerCreateDirectMessage(c echo.Context) error {
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

	member, conversation, err := s.conversationAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.CreateDirectMessage(conversation.ID, member.ID, body.Content, body.FileURL)
	if err != nil {
		log.Println("creating direct message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ConversationStream(conversation.ID), realtime.Event{
		Type:     realtime.Added,
		ID:       message.ID,
		Document: message,
	})

	return c.JSON(http.StatusOK, message)
}

func (s *Server) HandlerUpdateDirectMessage(c echo.Context) error {
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

	member, conversation, err := s.conversationAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.GetDirectMessage(c.Param("directMessageId"))
	if err != nil {
		log.Println("fetching direct message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if message == nil || message.ConversationID != conversation.ID || message.Deleted {
		resp["error"] = "Message not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if message.MemberID != member.ID {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	updated, err := s.db.UpdateDirectMessageContent(message.ID, body.Content)
	if err != nil {
		log.Println("updating direct message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ConversationStream(conversation.ID), realtime.Event{
		Type:     realtime.Modified,
		ID:       updated.ID,
		Document: updated,
	})

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandlerDeleteDirectMessage(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	member, conversation, err := s.conversationAccess(c, profile.ID)
	if err != nil {
		return handled(err)
	}

	message, err := s.db.GetDirectMessage(c.Param("directMessageId"))
	if err != nil {
		log.Println("fetching direct message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if message == nil || message.ConversationID != conversation.ID || message.Deleted {
		resp["error"] = "Message not found"
		return c.JSON(http.StatusNotFound, resp)
	}
	if message.MemberID != member.ID && !member.Role.CanModerate() {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	deleted, err := s.db.SoftDeleteDirectMessage(message.ID)
	if err != nil {
		log.Println("deleting direct message:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	s.hub.Broadcast(realtime.ConversationStream(conversation.ID), realtime.Event{
		Type:     realtime.Modified,
		ID:       deleted.ID,
		Document: deleted,
	})

	return c.JSON(http.StatusOK, deleted)
}
