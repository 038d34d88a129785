package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.SessionGate)

	e.GET("/", s.HelloWorldHandler)
	e.GET("/health", s.HealthHandler)

	// Auth
	e.POST("/api/auth/session", s.HandlerSessionLogin)
	e.POST("/api/auth/logout", s.HandlerLogout)

	// Servers
	e.GET("/api/servers", s.HandlerListServers)
	e.POST("/api/servers", s.HandlerCreateServer)
	e.PATCH("/api/servers/:serverId", s.HandlerUpdateServer)
	e.DELETE("/api/servers/:serverId", s.HandlerDeleteServer)
	e.PATCH("/api/servers/:serverId/invite-code", s.HandlerRotateInviteCode)
	e.PATCH("/api/servers/:serverId/leave", s.HandlerLeaveServer)

	// Channels
	e.POST("/api/channels", s.HandlerCreateChannel)
	e.PATCH("/api/channels/:channelId", s.HandlerUpdateChannel)
	e.DELETE("/api/channels/:channelId", s.HandlerDeleteChannel)

	// Members
	e.PATCH("/api/members/:memberId", s.HandlerUpdateMemberRole)
	e.DELETE("/api/members/:memberId", s.HandlerKickMember)

	// Conversations
	e.POST("/api/conversations", s.HandlerFindOrCreateConversation)

	// Message history
	e.GET("/api/messages", s.HandlerChannelMessages)
	e.GET("/api/direct-messages", s.HandlerDirectMessages)

	// Socket-style message mutations
	e.POST("/api/socket/messages", s.HandlerCreateMessage)
	e.PATCH("/api/socket/messages/:messageId", s.HandlerUpdateMessage)
	e.DELETE("/api/socket/messages/:messageId", s.HandlerDeleteMessage)
	e.POST("/api/socket/direct-messages", s.HandlerCreateDirectMessage)
	e.PATCH("/api/socket/direct-messages/:directMessageId", s.HandlerUpdateDirectMessage)
	e.DELETE("/api/socket/direct-messages/:directMessageId", s.HandlerDeleteDirectMessage)

	// Uploads
	e.POST("/api/upload", s.HandlerUpload)

	// Invite join flow (page route, responds with redirects)
	e.GET("/invite/:inviteCode", s.HandlerJoinByInvite)

	// Realtime feed
	e.GET("/ws/chat", s.HandlerChatSocket)

	return e
}
