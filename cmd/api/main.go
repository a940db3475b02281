package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"campuscore.org/internal/alerts"
	"campuscore.org/internal/audit"
	"campuscore.org/internal/auth"
	"campuscore.org/internal/config"
	"campuscore.org/internal/httpapi"
	"campuscore.org/internal/obs"
	"campuscore.org/internal/registry"
	"campuscore.org/internal/schema"
)

var version = "0.3.0"

func main() {
	obs.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var db *sql.DB
	if cfg.PGDSN != "" {
		db, err = sql.Open("pgx", cfg.PGDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := schema.Ensure(ctx, db); err != nil {
			cancel()
			log.Fatalf("schema: %v", err)
		}
		cancel()
	}

	var (
		identityStore auth.IdentityStore
		studentStore  registry.Store
		auditStore    audit.Store
	)
	if db != nil {
		identityStore = auth.NewPGStore(db)
		studentStore = registry.NewPGStore(db)
		auditStore = audit.NewPGLog(db)
	} else {
		log.Println("no CAMPUS_PG_DSN set, using in-memory stores")
		identityStore = auth.NewMemoryStore()
		studentStore = registry.NewMemoryStore()
		auditStore = audit.NewMemoryLog()
	}

	// Audit write failures fan out here; a subscriber drains them into the
	// error log so operators see them even without metrics scraping.
	alertStream := alerts.New()
	alertCtx, stopAlerts := context.WithCancel(context.Background())
	defer stopAlerts()
	go func() {
		for evt := range alertStream.Subscribe(alertCtx) {
			obs.LogError("alert", map[string]any{
				"kind":   evt.Kind,
				"detail": evt.Detail,
			})
		}
	}()

	trail := audit.NewTrail(auditStore, audit.WithAlerts(alertStream))

	tokens, err := auth.NewTokenCodec(cfg.AuthSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}
	authSvc, err := auth.NewService(identityStore, tokens, trail)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	students, err := registry.NewService(studentStore)
	if err != nil {
		log.Fatalf("registry service: %v", err)
	}

	if cfg.SeedDemo {
		if err := seedAdmin(context.Background(), identityStore); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	api := httpapi.New(httpapi.Config{
		Auth:       authSvc,
		Tokens:     tokens,
		Students:   students,
		Trail:      trail,
		Ready:      httpapi.ReadyProbe{DB: db},
		Version:    version,
		RateBurst:  cfg.RateBurst,
		RatePerSec: cfg.RatePerSec,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting campus-core %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}

// seedAdmin bootstraps the demo super admin. The weak password is a known
// demo credential; never enable CAMPUS_SEED_DEMO in production.
func seedAdmin(ctx context.Context, store auth.IdentityStore) error {
	const email = "admin@faculty.edu"
	if _, err := store.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}
	return store.Create(ctx, &auth.Identity{
		ID:           "admin-0001",
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
}
