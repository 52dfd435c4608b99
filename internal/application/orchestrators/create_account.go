package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"academy/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
}

var (
	ErrEmailAlreadyExists    = errors.New("an account with this email already exists")
	ErrUsernameAlreadyExists = errors.New("this username is taken")
)

// ExecuteCreateAccount coordinates staff account creation.
// PRE: Valid email, unique username, password >= 8 chars, valid role
// POST: Active account created with hashed password
// INVARIANT: Email and username must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	if input.Email == "" {
		return "", errors.New("email cannot be empty")
	}
	if input.Username == "" {
		return "", errors.New("username cannot be empty")
	}
	if input.Password == "" {
		return "", errors.New("password cannot be empty")
	}
	if input.Role == "" {
		return "", errors.New("role cannot be empty")
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailAlreadyExists
	}
	if _, err := deps.AccountStore.GetByUsername(ctx, input.Username); err == nil {
		return "", ErrUsernameAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Status:    account.StatusActive,
		CreatedAt: time.Now(),
	}

	// Validate domain rules
	if err := acct.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "account_created", "email", input.Email, "role", input.Role)

	return acct.ID, nil
}

// ExecuteSeedStaff creates the default admin and moderator accounts if they
// do not exist yet. Used at startup so a fresh deployment can review
// applications immediately.
// PRE: Database is initialized
// POST: admin and moderator accounts exist
func ExecuteSeedStaff(ctx context.Context, deps CreateAccountDeps, adminEmail, adminPassword, modEmail, modPassword string) error {
	seeds := []CreateAccountInput{
		{Email: adminEmail, Username: "admin", FirstName: "Academy", LastName: "Admin", Password: adminPassword, Role: account.RoleAdmin},
		{Email: modEmail, Username: "moderator", FirstName: "Review", LastName: "Team", Password: modPassword, Role: account.RoleModerator},
	}

	for _, seed := range seeds {
		_, err := ExecuteCreateAccount(ctx, seed, deps)
		if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrUsernameAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}
		slog.Info("auth_event", "event", "staff_seeded", "email", seed.Email, "role", seed.Role)
	}
	return nil
}
