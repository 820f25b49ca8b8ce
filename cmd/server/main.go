package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaar-orders/internal/broadcast"
	"bazaar-orders/internal/config"
	"bazaar-orders/internal/database"
	"bazaar-orders/internal/httpapi"
	"bazaar-orders/internal/repo"
	"bazaar-orders/internal/seed"
	"bazaar-orders/internal/service"
	"bazaar-orders/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	db := database.NewPostgres()
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Migrate failed: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Upload dir: %v", err)
	}

	userRepo := repo.NewUserRepo(db)
	productRepo := repo.NewProductRepo(db)
	orderRepo := repo.NewOrderRepo(db)

	if err := seed.Run(ctx, userRepo, productRepo); err != nil {
		log.Printf("Seed error: %v", err)
	}

	hub := broadcast.NewHub()
	sessions := session.NewStore(cfg.SessionTTL)
	go session.NewSweeper(sessions, cfg.SweepInterval).Run(ctx)

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:      service.NewAuthService(userRepo),
		Products:  service.NewProductService(productRepo),
		Orders:    service.NewOrderService(db, orderRepo, hub),
		Stats:     service.NewStatsService(orderRepo),
		Sessions:  sessions,
		Hub:       hub,
		Health:    database.NewService(db),
		UploadDir: cfg.UploadDir,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}
