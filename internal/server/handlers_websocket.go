package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"concord/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandlerChatSocket upgrades to a websocket and streams document change
// events for one channel or one conversation. The caller must be a member
// of the channel's server, or a party to the conversation.
func (s *Server) HandlerChatSocket(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	var stream string
	switch {
	case c.QueryParam("channelId") != "":
		channel, err := s.db.GetChannel(c.QueryParam("channelId"))
		if err != nil {
			log.Println("fetching channel:", err)
			resp["error"] = "Internal Error"
			return c.JSON(http.StatusInternalServerError, resp)
		}
		if channel == nil {
			resp["error"] = "Channel not found"
			return c.JSON(http.StatusNotFound, resp)
		}

		member, err := s.db.FindMember(channel.ServerID, profile.ID)
		if err != nil {
			log.Println("finding member:", err)
			resp["error"] = "Internal Error"
			return c.JSON(http.StatusInternalServerError, resp)
		}
		if member == nil {
			resp["error"] = "Forbidden"
			return c.JSON(http.StatusForbidden, resp)
		}

		stream = realtime.ChannelStream(channel.ID)

	case c.QueryParam("conversationId") != "":
		_, conversation, err := s.conversationAccess(c, profile.ID)
		if err != nil {
			return handled(err)
		}
		stream = realtime.ConversationStream(conversation.ID)

	default:
		resp["error"] = "Stream missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println("upgrading connection:", err)
		return err
	}

	sub := s.hub.Subscribe(stream)

	go func() {
		for event := range sub.C() {
			if err := conn.WriteJSON(event); err != nil {
				break
			}
		}
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unsubscribe(sub)
	conn.Close()
	return nil
}
