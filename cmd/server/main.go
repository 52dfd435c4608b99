package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "academy/internal/adapters/email"
	"academy/internal/adapters/files"
	web "academy/internal/adapters/http"
	"academy/internal/adapters/storage"
	accountStore "academy/internal/adapters/storage/account"
	applicationStore "academy/internal/adapters/storage/application"
	notificationStore "academy/internal/adapters/storage/notification"
	outboxStorePkg "academy/internal/adapters/storage/outbox"
	wizardStore "academy/internal/adapters/storage/wizard"
	"academy/internal/application/orchestrators"
	"academy/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// SQLite with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("ACADEMY_DB", "academy.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized")

	// Wrap the DB for slow-query logging
	timedDB := storage.NewTimedDB(db)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	wizards := wizardStore.NewMemoryStore()
	stores := &web.Stores{
		AccountStore:      acctStore,
		ApplicationStore:  applicationStore.NewSQLiteStore(timedDB),
		NotificationStore: notificationStore.NewSQLiteStore(timedDB),
		OutboxStore:       outboxStorePkg.NewSQLiteStore(timedDB),
		WizardStore:       wizards,
		FileStore:         files.NewLocalStore(envOrDefault("ACADEMY_UPLOAD_DIR", "uploads"), "/uploads"),
	}

	// Seed staff accounts so the review queue is reachable on first boot
	adminEmail := envOrDefault("ACADEMY_ADMIN_EMAIL", "admin@academy.gg")
	adminPassword := envOrDefault("ACADEMY_ADMIN_PASSWORD", "change-me-please")
	modEmail := envOrDefault("ACADEMY_MODERATOR_EMAIL", "moderator@academy.gg")
	modPassword := envOrDefault("ACADEMY_MODERATOR_PASSWORD", "change-me-please")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedStaff(context.Background(), seedDeps, adminEmail, adminPassword, modEmail, modPassword); err != nil {
		log.Fatalf("failed to seed staff accounts: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("ACADEMY_RESEND_KEY")
	emailFrom := envOrDefault("ACADEMY_RESEND_FROM", "Esports Academy <noreply@academy.gg>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("ACADEMY_ENV") == "production" {
			log.Println("WARNING: ACADEMY_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set ACADEMY_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailFrom)

	// Background worker delivers queued confirmation and decision emails
	outboxStopCh := make(chan struct{})
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: sender, From: emailFrom},
	})
	orchestrators.StartBackgroundWorker(processor, 1*time.Minute, outboxStopCh)
	defer close(outboxStopCh)

	// Periodically evict abandoned wizard sessions
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				wizards.Sweep()
			case <-outboxStopCh:
				return
			}
		}
	}()

	mux := web.NewMux("static", envOrDefault("ACADEMY_UPLOAD_DIR", "uploads"), stores)

	addr := envOrDefault("ACADEMY_ADDR", ":8080")
	log.Printf("Academy %s starting on %s (env=%s)", version, addr, envOrDefault("ACADEMY_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
