package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/cmd"
	"github.com/paoluke/tienda/app/configs"
	"github.com/paoluke/tienda/app/handlers"
	"github.com/paoluke/tienda/app/handlers/admin"
	"github.com/paoluke/tienda/app/realtime"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/paoluke/tienda/app/routes"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/storage"
	"github.com/paoluke/tienda/app/utils/renderer"
	"github.com/paoluke/tienda/app/utils/sessions"
)

func main() {
	env := configs.LoadENV
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := configs.InitTracing(ctx, env)
	if err != nil {
		log.Fatalf("Tracing setup failed: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Tracing shutdown failed: %v", err)
		}
	}()

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	configRepo := repositories.NewConfigRepository(db)

	photos, err := storage.New(storage.Config{
		Driver:    env.StorageDriver,
		BaseURL:   env.StorageURL,
		APIKey:    env.StorageKey,
		Bucket:    env.StorageBucket,
		UploadDir: env.UploadDir,
	})
	if err != nil {
		log.Fatalf("Photo storage setup failed: %v", err)
	}

	feed, err := realtime.New(ctx, realtime.Options{
		Driver:      env.RealtimeDriver,
		RedisURL:    env.RedisURL,
		PostgresDSN: env.DSN(),
		Loader:      configRepo.Get,
	})
	if err != nil {
		log.Fatalf("Realtime feed setup failed: %v", err)
	}
	log.Printf("✅ Realtime feed %q ready.", env.RealtimeDriver)

	validate := validator.New()

	configSvc := services.NewConfigService(configRepo, feed, validate)
	catalogSvc := services.NewCatalogService(productRepo, categoryRepo)
	inventorySvc := services.NewInventoryService(productRepo, categoryRepo, photos, validate)
	contactSvc := services.NewContactService(configSvc)

	subscription := realtime.NewSubscription(feed, configSvc.Replace)
	if err := subscription.Start(ctx); err != nil {
		log.Printf("WARN realtime subscription unavailable, config changes from other processes will not be seen: %v", err)
	}
	defer subscription.Stop()

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys: %v", err)
	}
	if len(keys.AuthKey) < 32 {
		log.Fatal("APP_AUTH_KEY must decode to at least 32 bytes")
	}
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	if env.AdminPasswordHash == "" {
		log.Println("WARN ADMIN_PASSWORD_HASH is empty, admin login is disabled. Run `hash-password` to create one.")
	}

	render := renderer.New(renderer.Options{
		Development: !env.IsProduction(),
		PhotoURL: func(ref string) string {
			return storage.URLFor(photos, ref)
		},
	})

	storeHandler := handlers.NewStoreHandler(render, catalogSvc, inventorySvc, contactSvc, configSvc)
	adminHandler := admin.NewAdminHandler(render, validate, sessionStore, categoryRepo, catalogSvc, inventorySvc, configSvc, env.AdminPasswordHash)

	uploadDir := ""
	if env.StorageDriver == "" || env.StorageDriver == "local" {
		uploadDir = env.UploadDir
	}

	router := routes.NewRouter(routes.Options{
		Store:     storeHandler,
		Admin:     adminHandler,
		Sessions:  sessionStore,
		CSRFKey:   keys.AuthKey[:32],
		Secure:    env.IsProduction(),
		UploadDir: uploadDir,
	})

	server := &http.Server{
		Addr:              ":" + env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
