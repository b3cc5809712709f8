package main

import (
	"log"

	_ "boardsync/docs"
	"boardsync/internal/config"
	"boardsync/internal/server"
)

// @title           Boardsync Realtime Gateway
// @version         1.0
// @description     Push channel for board collaboration clients.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Gateway initialization failed: %v", err)
	}

	s.Run()
}
