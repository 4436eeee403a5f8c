package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/cart"
	"github.com/campuscanteen/canteen-api/internal/config"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/metrics"
	"github.com/campuscanteen/canteen-api/internal/notification"
	"github.com/campuscanteen/canteen-api/internal/order"
	"github.com/campuscanteen/canteen-api/internal/storage"
	"github.com/campuscanteen/canteen-api/internal/user"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	db := client.Database(cfg.MongoDB)
	if err := storage.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	users := user.NewMongoRepo(db)
	menuRepo := menu.NewMongoRepo(db)
	orderRepo := order.NewMongoRepo(db)
	notifRepo := notification.NewMongoRepo(db)
	archiveRepo := archive.NewMongoRepo(db)

	m := metrics.New()

	orderSvc := order.NewService(
		orderRepo, menuRepo, users, notifRepo,
		storage.NewSessionRunner(client), cfg.PreparationTime,
	).WithHooks(m.OrdersCreated.Inc, m.NumberConflicts.Inc)
	cartSvc := cart.NewService(users, menuRepo)

	if err := ensureAdmin(ctx, users, cfg); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	job := archive.NewJob(archiveRepo, orderRepo, orderSvc).
		WithHook(func(outcome string) { m.ArchiveRuns.WithLabelValues(outcome).Inc() })
	sched := job.Schedule()
	defer sched.Stop()

	r := newRouter(deps{
		cfg:      cfg,
		users:    users,
		menu:     menuRepo,
		orders:   orderSvc,
		orderRep: orderRepo,
		carts:    cartSvc,
		notifs:   notifRepo,
		archives: archiveRepo,
		metrics:  m,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("canteen-api listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// ensureAdmin creates the configured admin account on first start.
func ensureAdmin(ctx context.Context, users user.Repository, cfg config.Config) error {
	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	hash, err := user.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &user.User{
		Name:     "Canteen Admin",
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     user.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, user.ErrAlreadyExist) {
			return nil // raced another instance
		}
		return err
	}
	log.Printf("[bootstrap] admin account created: %s", cfg.AdminEmail)
	return nil
}
