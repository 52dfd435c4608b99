package web

import (
	"net/http"

	"academy/internal/adapters/http/middleware"
	"academy/internal/application/orchestrators"
	"academy/internal/domain/outbox"
)

// outboxProcessor builds a processor wired to the configured email sender.
func outboxProcessor() *orchestrators.OutboxProcessor {
	return orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: emailSender, From: emailFromAddress},
	})
}

// requireAdmin checks the session for the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if !middleware.IsAdmin(r.Context()) {
		http.Error(w, "admin required", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// handleAdminOutboxList lists outbox entries needing attention.
// ?status=all includes pending entries; the default shows failures.
func handleAdminOutboxList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	limit := queryInt(r, "limit", 50)
	if limit > 100 {
		limit = 100
	}

	var entries []outbox.Entry
	var err error
	if r.URL.Query().Get("status") == "all" {
		entries, err = stores.OutboxStore.ListPending(r.Context(), limit)
	} else {
		entries, err = stores.OutboxStore.ListFailed(r.Context(), limit)
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAdminOutboxRetry manually re-attempts one entry.
func handleAdminOutboxRetry(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if err := outboxProcessor().ProcessSingle(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "retry triggered"})
}

// handleAdminOutboxAbandon marks one entry as abandoned.
func handleAdminOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if err := outboxProcessor().AbandonEntry(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}
