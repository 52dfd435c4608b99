package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"academy/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator. Identifier may be an
// email address or a username.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	Email     string
	Username  string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrPendingReview      = errors.New("your application is still pending review")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Identifier and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Accounts pending review cannot sign in until approved
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Identifier == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := lookupAccount(ctx, deps.AccountStore, input.Identifier)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "identifier", input.Identifier, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	// Applicants stay locked out until a moderator approves them
	if acct.IsPendingReview() {
		slog.Info("auth_event", "event", "login_blocked", "identifier", input.Identifier, "reason", "pending_review")
		return LoginResult{}, ErrPendingReview
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "identifier", input.Identifier, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "identifier", input.Identifier, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login — reset failed attempts
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "account_id", acct.ID, "role", acct.Role)

	return LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Username:  acct.Username,
		Role:      acct.Role,
	}, nil
}

// lookupAccount resolves an identifier to an account, treating anything with
// an '@' as an email address.
func lookupAccount(ctx context.Context, store AccountStoreForLogin, identifier string) (account.Account, error) {
	if strings.Contains(identifier, "@") {
		return store.GetByEmail(ctx, identifier)
	}
	return store.GetByUsername(ctx, identifier)
}
