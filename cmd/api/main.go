package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/malafaareh/storefront/internal/catalog"
	"github.com/malafaareh/storefront/internal/config"
	"github.com/malafaareh/storefront/internal/httpx"
	kafkax "github.com/malafaareh/storefront/internal/kafka"
	"github.com/malafaareh/storefront/internal/orders"
	"github.com/malafaareh/storefront/internal/payment"
	"github.com/malafaareh/storefront/internal/postgres"
	"github.com/malafaareh/storefront/internal/redisx"
	"github.com/malafaareh/storefront/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Backend selection happens exactly once; everything downstream works
	// against the store interfaces and never knows which one is active.
	orderRepo, catalogStore, userStore := selectBackends(ctx, cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redisx.New(cfg.RedisAddr)
		defer rdb.Close()
	}

	var producer *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
		producer.Start(ctx)
	}

	seedAdmin(ctx, cfg, userStore)

	svc := &orders.Service{Repo: orderRepo, Currency: cfg.Currency}
	authmw := &httpx.Auth{Secret: cfg.JWTSecret}

	router := httpx.NewRouter()
	(&httpx.AuthHandler{Users: userStore, Secret: cfg.JWTSecret}).Register(router)
	(&httpx.ProductsHandler{Catalog: catalogStore}).Register(router)
	(&httpx.OrdersHandler{
		Svc: svc, Repo: orderRepo, Catalog: catalogStore,
		Redis: rdb, Producer: producer, Service: cfg.ServiceName,
	}).Register(router, authmw)
	(&httpx.PaymentsHandler{
		Svc: svc, Repo: orderRepo, Catalog: catalogStore,
		Client:        payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey),
		WebhookSecret: cfg.PaymentWebhookSecret,
		SuccessURL:    cfg.SuccessURL, CancelURL: cfg.CancelURL,
		Redis: rdb, Producer: producer, Service: cfg.ServiceName,
	}).Register(router, authmw)
	(&httpx.AdminHandler{Catalog: catalogStore, Repo: orderRepo}).Register(router, authmw)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("server error: %v", err)
	}
	producer.WaitClosed()
}

// selectBackends returns the Postgres stores when a database is configured
// and reachable, otherwise the file/in-memory fallback under DataDir. A
// configured-but-unreachable database is logged, not fatal, so local
// development keeps working without one.
func selectBackends(ctx context.Context, cfg config.Config) (orders.Repository, catalog.Store, users.Store) {
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err == nil {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatalf("ensure schema: %v", err)
			}
			log.Println("using postgres backend")
			return &orders.PGRepo{DB: pool}, &catalog.PGStore{DB: pool}, &users.PGStore{DB: pool}
		}
		log.Printf("db connect failed, falling back to file backend: %v", err)
	}
	log.Printf("using file backend at %s", cfg.DataDir)
	return orders.NewFileRepo(cfg.DataDir), catalog.NewMemoryStore(), users.NewFileStore(cfg.DataDir)
}

func seedAdmin(ctx context.Context, cfg config.Config, store users.Store) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set; skipping admin seed")
		return
	}
	existing, err := store.ByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		if existing.Role != users.RoleAdmin {
			log.Printf("user %s exists but is not admin; update the role manually", cfg.AdminEmail)
		}
		return
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		log.Printf("admin seed lookup failed: %v", err)
		return
	}
	hash, err := users.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("admin seed: %v", err)
		return
	}
	err = store.Create(ctx, users.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		Name:         "Administrator",
		Role:         users.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		log.Printf("admin seed failed: %v", err)
		return
	}
	log.Printf("admin user created for %s", cfg.AdminEmail)
}
