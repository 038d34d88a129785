package main

import (
	"fmt"

	"concord/internal/auth"
	"concord/internal/config"
	"concord/internal/database"
	"concord/internal/realtime"
	"concord/internal/server"
	"concord/internal/storage"
)

func main() {
	cfg := config.Load(".env")

	db, err := database.New(database.Options{
		URL:       cfg.DBUrl,
		Username:  cfg.DBUsername,
		Password:  cfg.DBPassword,
		Namespace: cfg.DBNamespace,
		Database:  cfg.DBDatabase,
	})
	if err != nil {
		panic(fmt.Sprintf("cannot connect to database: %s", err))
	}

	uploads, err := storage.New(storage.Options{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.PublicURL,
	})
	if err != nil {
		panic(fmt.Sprintf("cannot set up object storage: %s", err))
	}

	tokens := auth.NewTokenService(cfg.IdentitySecret, cfg.SessionSecret, cfg.SessionTTL)

	hub := realtime.NewHub()
	go hub.Run()

	srv := server.New(cfg, db, tokens, hub, uploads)

	if err := srv.HTTPServer().ListenAndServe(); err != nil {
		panic(fmt.Sprintf("cannot start server: %s", err))
	}
}
