package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"academy/internal/adapters/email"
	"academy/internal/adapters/files"
	"academy/internal/adapters/http/middleware"
	accountStore "academy/internal/adapters/storage/account"
	applicationStore "academy/internal/adapters/storage/application"
	notificationStore "academy/internal/adapters/storage/notification"
	outboxStore "academy/internal/adapters/storage/outbox"
	wizardStore "academy/internal/adapters/storage/wizard"
	domainAccount "academy/internal/domain/account"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	ApplicationStore  applicationStore.Store
	NotificationStore notificationStore.Store
	OutboxStore       outboxStore.Store

	// WizardStore is memory-only; abandoned wizard runs leave no trace.
	WizardStore *wizardStore.MemoryStore

	// FileStore receives uploaded proof and CV documents.
	FileStore files.Store
}

// loadCSRFKey reads the CSRF secret from ACADEMY_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ACADEMY_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ACADEMY_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ACADEMY_ENV") == "production" {
		log.Fatal("ACADEMY_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ACADEMY_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
// staticDir holds the SPA bundle; uploadsDir holds stored proof documents.
func NewMux(staticDir, uploadsDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("ACADEMY_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	mux.Handle("/uploads/", middleware.RequireRole(domainAccount.RoleModerator, domainAccount.RoleAdmin)(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestLog -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.RequestLog,
	)
}
