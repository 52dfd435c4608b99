package orchestrators

import (
	"context"
	"errors"
	"testing"

	"academy/internal/domain/account"
)

// activeAccount returns a stored active account with a known password.
func activeAccount(t *testing.T, store *mockAccountStore) account.Account {
	t.Helper()
	a := account.Account{
		ID:       "acct-1",
		Email:    "mod@academy.gg",
		Username: "moderator",
		Role:     account.RoleModerator,
		Status:   account.StatusActive,
	}
	if err := a.SetPassword("correct-horse"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	store.accounts[a.ID] = a
	return a
}

// TestExecuteLogin_ByEmailAndUsername tests both identifier forms.
func TestExecuteLogin_ByEmailAndUsername(t *testing.T) {
	store := newMockAccountStore()
	activeAccount(t, store)
	deps := LoginDeps{AccountStore: store}

	for _, identifier := range []string{"mod@academy.gg", "moderator"} {
		res, err := ExecuteLogin(context.Background(), LoginInput{Identifier: identifier, Password: "correct-horse"}, deps)
		if err != nil {
			t.Fatalf("login with %q: %v", identifier, err)
		}
		if res.AccountID != "acct-1" || res.Role != account.RoleModerator {
			t.Errorf("unexpected result for %q: %+v", identifier, res)
		}
	}
}

// TestExecuteLogin_WrongPassword tests the failure counter path.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	activeAccount(t, store)
	deps := LoginDeps{AccountStore: store}

	_, err := ExecuteLogin(context.Background(), LoginInput{Identifier: "moderator", Password: "wrong"}, deps)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.accounts["acct-1"].FailedLogins != 1 {
		t.Errorf("expected failed login to be recorded, got %d", store.accounts["acct-1"].FailedLogins)
	}
}

// TestExecuteLogin_Lockout tests the five-failure lock.
func TestExecuteLogin_Lockout(t *testing.T) {
	store := newMockAccountStore()
	activeAccount(t, store)
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 5; i++ {
		_, _ = ExecuteLogin(context.Background(), LoginInput{Identifier: "moderator", Password: "wrong"}, deps)
	}
	_, err := ExecuteLogin(context.Background(), LoginInput{Identifier: "moderator", Password: "correct-horse"}, deps)
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

// TestExecuteLogin_PendingReviewBlocked tests that applicants cannot sign in
// before a decision.
func TestExecuteLogin_PendingReviewBlocked(t *testing.T) {
	store := newMockAccountStore()
	a := account.Account{
		ID:       "acct-2",
		Email:    "applicant@example.com",
		Username: "applicant",
		Role:     account.RolePro,
		Status:   account.StatusPendingReview,
	}
	if err := a.SetPassword("hunter2hunter2"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	store.accounts[a.ID] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{Identifier: "applicant", Password: "hunter2hunter2"}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrPendingReview) {
		t.Errorf("expected ErrPendingReview, got %v", err)
	}
}

// TestExecuteLogin_UnknownIdentifier tests that lookups never leak existence.
func TestExecuteLogin_UnknownIdentifier(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{Identifier: "ghost", Password: "whatever"}, LoginDeps{AccountStore: newMockAccountStore()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
