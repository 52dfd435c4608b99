package orchestrators

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"academy/internal/domain/account"
	"academy/internal/domain/application"
	"academy/internal/domain/attachment"
	"academy/internal/domain/notification"
	"academy/internal/domain/outbox"
	"academy/internal/domain/wizard"
)

// mockAccountStore implements the account store interfaces for testing.
type mockAccountStore struct {
	accounts map[string]account.Account
	failSave bool
	saveErr  error // returned verbatim by Save when set
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.failSave {
		return errors.New("save failed")
	}
	m.accounts[a.ID] = a
	return nil
}

// mockApplicationStore implements the application store interfaces for testing.
type mockApplicationStore struct {
	apps     map[string]application.Application
	failSave bool
}

func newMockApplicationStore() *mockApplicationStore {
	return &mockApplicationStore{apps: make(map[string]application.Application)}
}

func (m *mockApplicationStore) GetByID(_ context.Context, id string) (application.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return application.Application{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockApplicationStore) Save(_ context.Context, a application.Application) error {
	if m.failSave {
		return errors.New("save failed")
	}
	m.apps[a.ID] = a
	return nil
}

// mockFileStore implements FileStore for testing with per-path failure injection.
type mockFileStore struct {
	saved     map[string]string
	failPaths []string
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{saved: make(map[string]string)}
}

func (m *mockFileStore) Save(_ context.Context, relPath string, _ io.Reader) (string, error) {
	for _, p := range m.failPaths {
		if strings.Contains(relPath, p) {
			return "", errors.New("disk full")
		}
	}
	m.saved[relPath] = relPath
	return "/uploads/" + relPath, nil
}

// mockOutboxStore implements OutboxStoreForSubmit for testing.
type mockOutboxStore struct {
	entries  []outbox.Entry
	failSave bool
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	if m.failSave {
		return errors.New("save failed")
	}
	m.entries = append(m.entries, e)
	return nil
}

// mockNotificationStore implements NotificationStoreForSubmit for testing.
type mockNotificationStore struct {
	notes    []notification.Notification
	failSave bool
}

func (m *mockNotificationStore) Save(_ context.Context, n notification.Notification) error {
	if m.failSave {
		return errors.New("save failed")
	}
	m.notes = append(m.notes, n)
	return nil
}

// submitFixture bundles the dependency mocks for submission tests.
type submitFixture struct {
	wizards       *mockWizards
	accounts      *mockAccountStore
	applications  *mockApplicationStore
	files         *mockFileStore
	outbox        *mockOutboxStore
	notifications *mockNotificationStore
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()
	f := &submitFixture{
		wizards:       newMockWizards(),
		accounts:      newMockAccountStore(),
		applications:  newMockApplicationStore(),
		files:         newMockFileStore(),
		outbox:        &mockOutboxStore{},
		notifications: &mockNotificationStore{},
	}
	sess := wizard.NewSession("wiz-1", fixedTime)
	sess.SelectGame("valorant")
	_ = sess.ToggleGroup("game-requirements")
	for _, id := range []string{"code-of-conduct", "player-agreement", "privacy-policy"} {
		_ = sess.ToggleDocument(id)
	}
	if err := sess.Proceed([]string{"game-requirements"}, []string{"code-of-conduct", "player-agreement", "privacy-policy"}); err != nil {
		t.Fatalf("fixture proceed: %v", err)
	}
	f.wizards.Put(sess)
	return f
}

func (f *submitFixture) deps() SubmitApplicationDeps {
	return SubmitApplicationDeps{
		Wizards:       f.wizards,
		AccountStore:  f.accounts,
		Applications:  f.applications,
		Files:         f.files,
		Outbox:        f.outbox,
		Notifications: f.notifications,
		GenerateID:    seqID(),
		Now:           fixedNow,
	}
}

func validSubmitForm() application.Form {
	return application.Form{
		FirstName:       "Jesse",
		LastName:        "Taylor",
		Email:           "jesse@example.com",
		Username:        "jsst",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
		GamerTag:        "jsst",
		Bio:             "Immortal 2 peak, three acts of team scrims.",
	}
}

func pdfUpload(size int64) *attachment.Upload {
	return &attachment.Upload{
		Filename:    "doc.pdf",
		ContentType: attachment.PDFContentType,
		Size:        size,
		Data:        strings.NewReader("%PDF-1.7"),
	}
}

// TestExecuteSubmitApplication_Valid tests the full happy-path sequence.
func TestExecuteSubmitApplication_Valid(t *testing.T) {
	f := newSubmitFixture(t)

	res, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
		CV:       pdfUpload(1 << 20),
	}, f.deps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acct, ok := f.accounts.accounts[res.AccountID]
	if !ok {
		t.Fatal("expected account to be created")
	}
	if acct.Role != account.RolePro || acct.Status != account.StatusPendingReview {
		t.Errorf("unexpected account state: role=%s status=%s", acct.Role, acct.Status)
	}
	if acct.PasswordHash == "" || acct.PasswordHash == "hunter2hunter2" {
		t.Error("expected password to be hashed")
	}

	app, ok := f.applications.apps[res.ApplicationID]
	if !ok {
		t.Fatal("expected application record to be created")
	}
	if app.IsApproved {
		t.Error("new applications must never be approved")
	}
	if app.Status != application.StatusPending {
		t.Errorf("expected pending status, got %s", app.Status)
	}
	if app.ProofURL == "" || app.CVURL == "" {
		t.Errorf("expected both document URLs, got proof=%q cv=%q", app.ProofURL, app.CVURL)
	}

	if len(f.outbox.entries) != 1 {
		t.Errorf("expected 1 queued email, got %d", len(f.outbox.entries))
	}
	if len(f.notifications.notes) != 1 || f.notifications.notes[0].Kind != notification.KindApplicationSubmitted {
		t.Errorf("unexpected notifications: %+v", f.notifications.notes)
	}
	if _, ok := f.wizards.Get("wiz-1"); ok {
		t.Error("expected wizard session to be discarded")
	}
}

// TestExecuteSubmitApplication_AccumulatesViolations tests that form and
// upload problems are reported together and nothing is persisted.
func TestExecuteSubmitApplication_AccumulatesViolations(t *testing.T) {
	f := newSubmitFixture(t)
	form := validSubmitForm()
	form.Email = "not-an-email"
	form.Bio = ""

	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     form,
		Proof:    nil,
	}, f.deps())

	var errs application.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"email", "bio", "proof"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected violation for %s, got %v", field, errs)
		}
	}
	if len(f.accounts.accounts) != 0 || len(f.applications.apps) != 0 {
		t.Error("expected nothing to be persisted on validation failure")
	}
}

// TestExecuteSubmitApplication_ProofConstraints tests type and size rules
// surfacing as field violations.
func TestExecuteSubmitApplication_ProofConstraints(t *testing.T) {
	f := newSubmitFixture(t)

	proof := pdfUpload(attachment.MaxDocumentSize + 1)
	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    proof,
	}, f.deps())
	var errs application.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if errs["proof"] != attachment.ErrTooLarge.Error() {
		t.Errorf("expected size violation, got %v", errs)
	}

	f = newSubmitFixture(t)
	proof = pdfUpload(1 << 20)
	proof.ContentType = "image/png"
	_, err = ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    proof,
	}, f.deps())
	if !errors.As(err, &errs) || errs["proof"] != attachment.ErrNotPDF.Error() {
		t.Errorf("expected type violation, got %v", err)
	}
}

// TestExecuteSubmitApplication_DuplicateEmail tests uniqueness surfacing as a
// field violation.
func TestExecuteSubmitApplication_DuplicateEmail(t *testing.T) {
	f := newSubmitFixture(t)
	f.accounts.accounts["existing"] = account.Account{ID: "existing", Email: "jesse@example.com", Username: "other"}

	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
	}, f.deps())
	var errs application.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := errs["email"]; !ok {
		t.Errorf("expected email violation, got %v", errs)
	}
}

// TestExecuteSubmitApplication_DuplicateLostRace tests that a unique
// constraint failure on the account insert — a concurrent submission winning
// the race past the pre-submit check — surfaces as a field violation rather
// than a generic failure.
func TestExecuteSubmitApplication_DuplicateLostRace(t *testing.T) {
	f := newSubmitFixture(t)
	f.accounts.saveErr = errors.New("constraint failed: UNIQUE constraint failed: account.email (2067)")

	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
	}, f.deps())
	var errs application.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if errs["email"] != "an account with this email already exists" {
		t.Errorf("expected email violation, got %v", errs)
	}
	if len(f.applications.apps) != 0 {
		t.Error("expected no application record after a lost race")
	}

	f = newSubmitFixture(t)
	f.accounts.saveErr = errors.New("constraint failed: UNIQUE constraint failed: account.username (2067)")
	_, err = ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
	}, f.deps())
	if !errors.As(err, &errs) || errs["username"] != "this username is taken" {
		t.Errorf("expected username violation, got %v", err)
	}
}

// TestExecuteSubmitApplication_ProofUploadFatal tests that a failed proof
// upload aborts the sequence before any application record exists.
func TestExecuteSubmitApplication_ProofUploadFatal(t *testing.T) {
	f := newSubmitFixture(t)
	f.files.failPaths = []string{"proof"}

	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
		CV:       pdfUpload(1 << 20),
	}, f.deps())
	if !errors.Is(err, ErrProofUploadFailed) {
		t.Fatalf("expected ErrProofUploadFailed, got %v", err)
	}
	if len(f.applications.apps) != 0 {
		t.Error("no application record may exist without a stored proof")
	}
	if len(f.outbox.entries) != 0 {
		t.Error("no confirmation may be queued on a failed submission")
	}
}

// TestExecuteSubmitApplication_CVUploadBestEffort tests that a failed CV
// upload does not abort the submission.
func TestExecuteSubmitApplication_CVUploadBestEffort(t *testing.T) {
	f := newSubmitFixture(t)
	f.files.failPaths = []string{"cv"}

	res, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
		CV:       pdfUpload(1 << 20),
	}, f.deps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := f.applications.apps[res.ApplicationID]
	if app.CVURL != "" {
		t.Errorf("expected empty CV URL after failed upload, got %q", app.CVURL)
	}
	if app.ProofURL == "" {
		t.Error("expected proof URL to be set")
	}
}

// TestExecuteSubmitApplication_ConfirmationBestEffort tests that failures in
// the confirmation channels never fail the submission.
func TestExecuteSubmitApplication_ConfirmationBestEffort(t *testing.T) {
	f := newSubmitFixture(t)
	f.outbox.failSave = true
	f.notifications.failSave = true

	_, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		WizardID: "wiz-1",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
	}, f.deps())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestExecuteSubmitApplication_WrongStep tests the application-step precondition.
func TestExecuteSubmitApplication_WrongStep(t *testing.T) {
	f := newSubmitFixture(t)
	sess := wizard.NewSession("wiz-2", fixedTime)
	sess.SelectGame("valorant")
	f.wizards.Put(sess)

	input := SubmitApplicationInput{
		WizardID: "wiz-2",
		Form:     validSubmitForm(),
		Proof:    pdfUpload(1 << 20),
	}
	if _, err := ExecuteSubmitApplication(context.Background(), input, f.deps()); !errors.Is(err, ErrWizardNotAtApplication) {
		t.Errorf("expected ErrWizardNotAtApplication, got %v", err)
	}

	input.WizardID = "missing"
	if _, err := ExecuteSubmitApplication(context.Background(), input, f.deps()); !errors.Is(err, ErrNoWizardSession) {
		t.Errorf("expected ErrNoWizardSession, got %v", err)
	}
}
