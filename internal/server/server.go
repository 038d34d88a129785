package server

import (
	"fmt"
	"net/http"
	"time"

	"concord/internal/auth"
	"concord/internal/config"
	"concord/internal/database"
	"concord/internal/realtime"
	"concord/internal/storage"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	tokens  *auth.TokenService
	auth    *auth.Resolver
	hub     *realtime.Hub
	uploads storage.Uploader
}

func New(cfg *config.Config, db database.Service, tokens *auth.TokenService, hub *realtime.Hub, uploads storage.Uploader) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		tokens:  tokens,
		auth:    auth.NewResolver(tokens, db),
		hub:     hub,
		uploads: uploads,
	}
}

// HTTPServer wraps the routes in an http.Server with sane timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
