package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var db *DB
	if cfg.DBPath != "" {
		db, err = OpenDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("db: %+v", err)
		}
		defer db.Close()
	}

	auth, err := NewAuth(db, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("auth: %+v", err)
	}

	game := NewGame(cfg)
	if db != nil {
		analytics := NewAnalytics(db)
		defer analytics.Stop()
		game.World().SetCombatSink(analytics)
	}
	go game.Run()

	stopHub := make(chan struct{})
	hub := NewHub(game, auth)
	go hub.Run(stopHub)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: cfg.Addr, Handler: SetupRoutes(hub, os.Stdout)}

	go func() {
		log.Printf("Server starting on %s (%d TPS, world %gx%g)", cfg.Addr, cfg.TickRate, cfg.WorldWidth, cfg.WorldHeight)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	close(stopHub)
	game.Stop()
}
