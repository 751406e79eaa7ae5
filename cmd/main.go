package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/emrekoco/syncarena/syncarena-backend/config"
	"github.com/emrekoco/syncarena/syncarena-backend/game"
	"github.com/emrekoco/syncarena/syncarena-backend/handlers"
	"github.com/emrekoco/syncarena/syncarena-backend/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	zlog := logger.New(cfg.LogFile)
	defer zlog.Sync()

	registry := game.NewRegistry(zlog)
	rooms := game.NewRoomIndex()
	hub := game.NewHub(registry, rooms, cfg.HeartbeatInterval, zlog)
	go hub.Run()
	defer hub.Stop()

	h := handlers.New(hub, registry, rooms, cfg, zlog)
	r := handlers.NewRouter(h)

	zlog.Infof("Server running on http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zlog.Fatalf("listen: %v", err)
	}
}
