package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"academy/internal/adapters/http/middleware"
	"academy/internal/application/orchestrators"
	"academy/internal/application/projections"
	applicationDomain "academy/internal/domain/application"
	"academy/internal/domain/game"
	"academy/internal/domain/requirement"
	"academy/internal/domain/wizard"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// validationFailure writes accumulated field violations as a 422 response.
func validationFailure(w http.ResponseWriter, errs applicationDomain.ValidationErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// stepConflict tells the SPA the wizard cannot serve the requested step and
// where to send the applicant instead.
func stepConflict(w http.ResponseWriter, redirect string) {
	writeJSON(w, http.StatusConflict, map[string]string{"redirect": redirect})
}

// wizardCookieName carries the transient wizard session ID. Separate from the
// auth cookie: applicants are anonymous until submission.
const wizardCookieName = "academy_wizard"

func wizardIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(wizardCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setWizardCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   7200, // matches the wizard store TTL
	})
}

func clearWizardCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// --- Game catalog ---

// gameView is the catalog entry shape served to the SPA.
type gameView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Requirements  []string `json:"requirements"`
	Opportunities []string `json:"opportunities"`
	EarningsMin   int      `json:"earnings_min"`
	EarningsMax   int      `json:"earnings_max"`
	Currency      string   `json:"currency"`
	Icon          string   `json:"icon"`
}

func toGameView(g game.Game) gameView {
	return gameView{
		ID:            g.ID,
		Name:          g.Name,
		Category:      g.Category,
		Difficulty:    g.Difficulty,
		Requirements:  g.Requirements,
		Opportunities: g.Opportunities,
		EarningsMin:   g.Earnings.Min,
		EarningsMax:   g.Earnings.Max,
		Currency:      g.Earnings.Currency,
		Icon:          g.Icon,
	}
}

// handleGames serves the game catalog in display order.
func handleGames(w http.ResponseWriter, r *http.Request) {
	games := game.List()
	out := make([]gameView, 0, len(games))
	for _, g := range games {
		out = append(out, toGameView(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLeaderboard serves the curated team standings for the landing page.
func handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows := projections.GetLeaderboard()
	type row struct {
		Rank       int    `json:"rank"`
		TeamName   string `json:"team_name"`
		GameName   string `json:"game_name"`
		Wins       int    `json:"wins"`
		Losses     int    `json:"losses"`
		PrizeMoney int    `json:"prize_money"`
	}
	out := make([]row, 0, len(rows))
	for _, lr := range rows {
		out = append(out, row{lr.Rank, lr.TeamName, lr.GameName, lr.Wins, lr.Losses, lr.PrizeMoney})
	}
	writeJSON(w, http.StatusOK, out)
}

// --- Wizard ---

// handleSelectGame starts (or restarts) the application wizard with a game.
func handleSelectGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GameID string `json:"game_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := orchestrators.ExecuteSelectGame(r.Context(), orchestrators.SelectGameInput{
		WizardID: wizardIDFromRequest(r),
		GameID:   body.GameID,
	}, orchestrators.SelectGameDeps{
		Wizards:    stores.WizardStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	setWizardCookie(w, sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"step": sess.Step, "game_id": sess.GameID})
}

// requirementsView assembles the JSON shape of the requirements step.
func requirementsView(res projections.RequirementsResult) map[string]any {
	type groupRow struct {
		ID                 string   `json:"id"`
		Title              string   `json:"title"`
		Severity           string   `json:"severity"`
		Items              []string `json:"items"`
		VerificationMethod string   `json:"verification_method"`
		Accepted           bool     `json:"accepted"`
	}
	type docRow struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		PageCount   int    `json:"page_count"`
		Required    bool   `json:"required"`
		Read        bool   `json:"read"`
	}

	groups := make([]groupRow, 0, len(res.Groups))
	for _, g := range res.Groups {
		groups = append(groups, groupRow{g.ID, g.Title, g.Severity, g.Items, g.VerificationMethod, g.Accepted})
	}
	docs := make([]docRow, 0, len(res.Documents))
	for _, d := range res.Documents {
		docs = append(docs, docRow{d.ID, d.Title, d.Description, d.PageCount, d.Required, d.Read})
	}
	return map[string]any{
		"game":      toGameView(res.Game),
		"groups":    groups,
		"documents": docs,
		"state":     res.State,
		"progress":  res.Progress,
		"ready":     res.Ready,
	}
}

// handleRequirements serves the requirements step view.
func handleRequirements(w http.ResponseWriter, r *http.Request) {
	res, err := projections.GetRequirements(r.Context(), projections.GetRequirementsQuery{
		WizardID: wizardIDFromRequest(r),
	}, projections.GetRequirementsDeps{Wizards: stores.WizardStore})
	if err != nil {
		if errors.Is(err, projections.ErrNotAvailable) {
			stepConflict(w, "/games")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requirementsView(res))
}

// refreshedRequirements re-projects the requirements view after a toggle so
// the SPA gets readiness and progress in the same round trip.
func refreshedRequirements(w http.ResponseWriter, r *http.Request) {
	res, err := projections.GetRequirements(r.Context(), projections.GetRequirementsQuery{
		WizardID: wizardIDFromRequest(r),
	}, projections.GetRequirementsDeps{Wizards: stores.WizardStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requirementsView(res))
}

// handleToggleGroup flips acceptance of one requirement group.
func handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GroupID string `json:"group_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteToggleGroup(r.Context(), orchestrators.ToggleRequirementInput{
		WizardID: wizardIDFromRequest(r),
		TargetID: body.GroupID,
	}, orchestrators.ToggleRequirementDeps{Wizards: stores.WizardStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoWizardSession) {
			stepConflict(w, "/games")
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	refreshedRequirements(w, r)
}

// handleToggleDocument flips the read flag of one legal document.
func handleToggleDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DocumentID string `json:"document_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteToggleDocument(r.Context(), orchestrators.ToggleRequirementInput{
		WizardID: wizardIDFromRequest(r),
		TargetID: body.DocumentID,
	}, orchestrators.ToggleRequirementDeps{Wizards: stores.WizardStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoWizardSession) {
			stepConflict(w, "/games")
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	refreshedRequirements(w, r)
}

// handleDocument serves one legal document with its markdown body rendered
// to HTML for the in-page viewer.
func handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := requirement.GetDocument(r.PathValue("id"))
	if err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(doc.Body), &buf); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         doc.ID,
		"title":      doc.Title,
		"page_count": doc.PageCount,
		"required":   doc.Required,
		"html":       buf.String(),
	})
}

// handleProceed advances the wizard from requirements to the application form.
func handleProceed(w http.ResponseWriter, r *http.Request) {
	sess, err := orchestrators.ExecuteProceed(r.Context(), orchestrators.ProceedInput{
		WizardID: wizardIDFromRequest(r),
	}, orchestrators.ToggleRequirementDeps{Wizards: stores.WizardStore})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrNoWizardSession):
			stepConflict(w, "/games")
		case errors.Is(err, wizard.ErrNotReady):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"step": sess.Step})
}

// handleApplicationStep serves the application form's context: the selected
// game. Redirects backward when the wizard has not passed requirements.
func handleApplicationStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := stores.WizardStore.Get(wizardIDFromRequest(r))
	if !ok {
		stepConflict(w, "/games")
		return
	}
	if !sess.CanEnterApplication() {
		stepConflict(w, "/requirements")
		return
	}
	g, err := game.GetByID(sess.GameID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": toGameView(g)})
}

// --- Auth ---

// handleLogin authenticates by email or username and opens a session.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Identifier: body.Identifier,
		Password:   body.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrPendingReview), errors.Is(err, orchestrators.ErrAccountLocked):
			writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, orchestrators.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		default:
			internalError(w, err)
		}
		return
	}

	token, err := sessions.Create(res.AccountID, res.Email, res.Username, res.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": res.AccountID,
		"username":   res.Username,
		"role":       res.Role,
	})
}

// handleLogout destroys the session and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.TokenFromRequest(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe reports the authenticated identity, if any.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": sess.AccountID,
		"email":      sess.Email,
		"username":   sess.Username,
		"role":       sess.Role,
	})
}

// --- Notifications ---

// handleNotifications lists the authenticated account's notifications.
func handleNotifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	items, err := stores.NotificationStore.ListByAccount(r.Context(), sess.AccountID, 50)
	if err != nil {
		internalError(w, err)
		return
	}
	unread, err := stores.NotificationStore.CountUnread(r.Context(), sess.AccountID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "unread": unread})
}

// handleNotificationRead marks one of the caller's notifications as read.
func handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	n, err := stores.NotificationStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	if n.AccountID != sess.AccountID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	n.MarkRead()
	if err := stores.NotificationStore.Save(r.Context(), n); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Moderation ---

// requireModerator checks the session for review privileges.
func requireModerator(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if !middleware.IsModeratorOrAdmin(r.Context()) {
		http.Error(w, "moderator required", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// handleReviewQueue lists pending applications for moderators, oldest first.
func handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireModerator(w, r); !ok {
		return
	}

	query := projections.GetReviewQueueQuery{
		GameID: r.URL.Query().Get("game_id"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	res, err := projections.GetReviewQueue(r.Context(), query, projections.GetReviewQueueDeps{
		Applications: stores.ApplicationStore,
		Accounts:     stores.AccountStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleReviewDecision records a moderator decision on one application.
func handleReviewDecision(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireModerator(w, r)
	if !ok {
		return
	}

	var body struct {
		Decision string `json:"decision"`
		Note     string `json:"note"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	app, err := orchestrators.ExecuteReviewApplication(r.Context(), orchestrators.ReviewApplicationInput{
		ApplicationID: r.PathValue("id"),
		ReviewerID:    sess.AccountID,
		Decision:      body.Decision,
		Note:          body.Note,
	}, orchestrators.ReviewApplicationDeps{
		Applications:  stores.ApplicationStore,
		Accounts:      stores.AccountStore,
		Notifications: stores.NotificationStore,
		Outbox:        stores.OutboxStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrUnknownDecision):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, applicationDomain.ErrAlreadyDecided):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"application_id": app.ID,
		"status":         app.Status,
	})
}
