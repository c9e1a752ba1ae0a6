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

	"github.com/gin-gonic/gin"

	"github.com/swapnilyadv/CloneX/config"
	httpapi "github.com/swapnilyadv/CloneX/internal/api/http"
	"github.com/swapnilyadv/CloneX/internal/api/http/routes"
	"github.com/swapnilyadv/CloneX/internal/auth"
	authservice "github.com/swapnilyadv/CloneX/internal/auth/service"
	"github.com/swapnilyadv/CloneX/internal/bootstrap"
	"github.com/swapnilyadv/CloneX/internal/composer"
	"github.com/swapnilyadv/CloneX/internal/notify"
)

const serviceName = "clonex-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := bootstrap.OpenBackends(ctx, cfg)
	if err != nil {
		log.Fatalf("backends: %v", err)
	}
	defer backends.Close()

	store := bootstrap.ProjectStore(backends, cfg)

	var (
		notifier notify.Notifier = notify.LogNotifier{}
		feed     *notify.RedisNotifier
	)
	if backends.Redis != nil {
		feed = notify.NewRedisNotifier(backends.Redis)
		notifier = feed
	}

	sessions, err := composer.NewSessions(composer.SessionConfig{
		MaxSessions: cfg.Drafts.MaxSessions,
		IdleTimeout: cfg.Drafts.IdleTimeout,
		SweepSpec:   cfg.Drafts.SweepSpec,
	}, auth.ContextProvider{}, store, notifier)
	if err != nil {
		log.Fatalf("drafts: %v", err)
	}
	if err := sessions.StartSweeper(); err != nil {
		log.Fatalf("drafts sweeper: %v", err)
	}
	defer sessions.StopSweeper()

	var (
		authenticate gin.HandlerFunc
		authSvc      *authservice.AuthService
	)
	if cfg.Firebase.Disabled {
		log.Println("[auth] FIREBASE_DISABLED=true, trusting X-User-Id header")
		authenticate = auth.HeaderUser("")
		authSvc = authservice.NewAuthService(nil, sessions)
	} else {
		client, err := auth.InitializeFirebase(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		authenticate = auth.FirebaseUser(client)
		authSvc = authservice.NewAuthService(client, sessions)
	}

	var db httpapi.DBPinger
	if backends.DB != nil {
		db = backends.DB
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Environment:    cfg.App.Environment,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Health:         httpapi.NewHealthHandler(serviceName, cfg.App.Version, db, backends.Redis),
		V1: routes.V1Deps{
			Store:           store,
			Sessions:        sessions,
			AuthService:     authSvc,
			Authenticate:    authenticate,
			Feed:            feed,
			SubmitPerMinute: cfg.RateLimit.SubmitPerMinute,
			SubmitBurst:     cfg.RateLimit.Burst,
			SubmitMaxKeys:   cfg.RateLimit.MaxKeys,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s %s listening on :%s (env=%s)", serviceName, cfg.App.Version, cfg.Server.Port, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
