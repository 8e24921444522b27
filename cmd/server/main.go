package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"shiftgy-backend/internal/config"
	"shiftgy-backend/internal/db"
	"shiftgy-backend/internal/presence"
	"shiftgy-backend/internal/routes"
	"shiftgy-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var location presence.LocationProvider = presence.NoLocation{}
	if cfg.SiteLocation != "" {
		location = presence.StaticLocation{Coords: cfg.SiteLocation}
	}

	ctx := context.Background()

	localManager := presence.BuildManager(ctx, store.NewLocalStore(store.DefaultFixtures()), location)
	defer localManager.Close()

	var remoteManager *presence.Manager
	if cfg.DbDsn != "" {
		database, err := db.Open(cfg.DbDsn)
		if err != nil {
			if cfg.PresenceMode == "remote" {
				log.Fatalf("db error: %v", err)
			}
			log.Printf("durable store unavailable, continuing local-only: %v", err)
		} else {
			remoteManager = presence.BuildManager(ctx, store.NewRemoteStore(database), location)
			defer remoteManager.Close()
		}
	}

	var forced store.Mode
	switch cfg.PresenceMode {
	case "local":
		forced = store.ModeLocal
	case "remote":
		forced = store.ModeRemote
	}
	resolver := presence.NewResolver(localManager, remoteManager, forced)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, resolver, cfg)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
