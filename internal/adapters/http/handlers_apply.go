package web

import (
	"errors"
	"net/http"

	"academy/internal/adapters/http/middleware"
	"academy/internal/application/orchestrators"
	"academy/internal/application/projections"
	applicationDomain "academy/internal/domain/application"
	"academy/internal/domain/attachment"
)

// maxSubmissionBytes bounds the multipart body: two documents at the upload
// ceiling plus headroom for the form fields.
const maxSubmissionBytes = 2*attachment.MaxDocumentSize + 1<<20

// uploadFromForm reads one optional file field into an attachment upload.
// Returns nil when the field was not submitted.
func uploadFromForm(r *http.Request, field string) (*attachment.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attachment.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	}, nil
}

// handleSubmitApplication accepts the multipart application form: the
// applicant's details plus the proof document (required) and CV (optional).
// On success the applicant is signed out and routed to the pending view.
func handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		http.Error(w, "request too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}
	if r.MultipartForm != nil {
		// Also closes the file handles opened by FormFile below
		defer r.MultipartForm.RemoveAll()
	}

	proof, err := uploadFromForm(r, "proof")
	if err != nil {
		http.Error(w, "could not read proof upload", http.StatusBadRequest)
		return
	}
	cv, err := uploadFromForm(r, "cv")
	if err != nil {
		http.Error(w, "could not read cv upload", http.StatusBadRequest)
		return
	}

	input := orchestrators.SubmitApplicationInput{
		WizardID: wizardIDFromRequest(r),
		Form: applicationDomain.Form{
			FirstName:       r.FormValue("first_name"),
			LastName:        r.FormValue("last_name"),
			Email:           r.FormValue("email"),
			Username:        r.FormValue("username"),
			Password:        r.FormValue("password"),
			PasswordConfirm: r.FormValue("password_confirm"),
			GamerTag:        r.FormValue("gamer_tag"),
			Bio:             r.FormValue("bio"),
		},
		Proof: proof,
		CV:    cv,
	}

	res, err := orchestrators.ExecuteSubmitApplication(r.Context(), input, orchestrators.SubmitApplicationDeps{
		Wizards:       stores.WizardStore,
		AccountStore:  stores.AccountStore,
		Applications:  stores.ApplicationStore,
		Files:         stores.FileStore,
		Outbox:        stores.OutboxStore,
		Notifications: stores.NotificationStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		var verrs applicationDomain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			validationFailure(w, verrs)
		case errors.Is(err, orchestrators.ErrNoWizardSession),
			errors.Is(err, orchestrators.ErrWizardNotAtApplication):
			stepConflict(w, "/games")
		case errors.Is(err, orchestrators.ErrProofUploadFailed):
			// The form stays intact client-side; the applicant retries
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		default:
			internalError(w, err)
		}
		return
	}

	// Submission ends any authenticated session: the new account stays
	// locked out until a moderator approves it.
	if token, ok := middleware.TokenFromRequest(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	clearWizardCookie(w)

	writeJSON(w, http.StatusCreated, map[string]string{
		"application_id": res.ApplicationID,
		"status":         "pending",
		"redirect":       "/status/" + res.ApplicationID,
	})
}

// handleApplicationStatus serves the post-submission pending view.
func handleApplicationStatus(w http.ResponseWriter, r *http.Request) {
	res, err := projections.GetPendingStatus(r.Context(), projections.GetPendingStatusQuery{
		ApplicationID: r.PathValue("id"),
	}, projections.GetPendingStatusDeps{
		Applications: stores.ApplicationStore,
		Accounts:     stores.AccountStore,
	})
	if err != nil {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
