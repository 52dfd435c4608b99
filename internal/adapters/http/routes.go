package web

import "net/http"

// registerRoutes attaches the JSON API. Public routes serve the wizard and
// landing page; authenticated routes serve notifications and moderation.
func registerRoutes(mux *http.ServeMux) {
	// Landing page
	mux.HandleFunc("GET /api/games", handleGames)
	mux.HandleFunc("GET /api/leaderboard", handleLeaderboard)

	// Application wizard (anonymous, cookie-scoped)
	mux.HandleFunc("POST /api/wizard/game", handleSelectGame)
	mux.HandleFunc("GET /api/wizard/requirements", handleRequirements)
	mux.HandleFunc("POST /api/wizard/requirements/groups", handleToggleGroup)
	mux.HandleFunc("POST /api/wizard/requirements/documents", handleToggleDocument)
	mux.HandleFunc("POST /api/wizard/proceed", handleProceed)
	mux.HandleFunc("GET /api/wizard/application", handleApplicationStep)
	mux.HandleFunc("GET /api/documents/{id}", handleDocument)

	// Submission and post-submission status
	mux.HandleFunc("POST /api/applications", handleSubmitApplication)
	mux.HandleFunc("GET /api/applications/{id}/status", handleApplicationStatus)

	// Auth
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("GET /api/me", handleMe)

	// Notifications
	mux.HandleFunc("GET /api/notifications", handleNotifications)
	mux.HandleFunc("POST /api/notifications/{id}/read", handleNotificationRead)

	// Moderation
	mux.HandleFunc("GET /api/review/queue", handleReviewQueue)
	mux.HandleFunc("POST /api/review/applications/{id}", handleReviewDecision)

	// Admin outbox management
	mux.HandleFunc("GET /api/admin/outbox", handleAdminOutboxList)
	mux.HandleFunc("POST /api/admin/outbox/{id}/retry", handleAdminOutboxRetry)
	mux.HandleFunc("POST /api/admin/outbox/{id}/abandon", handleAdminOutboxAbandon)
}
