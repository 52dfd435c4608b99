package account

import (
	"testing"
	"time"
)

func validAccount() Account {
	return Account{
		ID:        "acct-1",
		Email:     "jesse@example.com",
		Username:  "jesse_t",
		Role:      RolePro,
		Status:    StatusPendingReview,
		CreatedAt: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
	}
}

// TestValidate_Valid tests that a well-formed account passes validation.
func TestValidate_Valid(t *testing.T) {
	a := validAccount()
	if err := a.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_Rejections tests email and role rules.
func TestValidate_Rejections(t *testing.T) {
	a := validAccount()
	a.Email = ""
	if err := a.Validate(); err != ErrEmptyEmail {
		t.Errorf("expected ErrEmptyEmail, got %v", err)
	}

	a = validAccount()
	a.Email = "not-an-email"
	if err := a.Validate(); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	a = validAccount()
	a.Role = "superuser"
	if err := a.Validate(); err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

// TestSetPassword_Floor tests the 8-character minimum.
func TestSetPassword_Floor(t *testing.T) {
	a := validAccount()
	if err := a.SetPassword("1234567"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := a.SetPassword("12345678"); err != nil {
		t.Errorf("unexpected error for 8-character password: %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "12345678" {
		t.Error("expected password to be hashed")
	}
}

// TestCheckPassword tests verification against the stored hash.
func TestCheckPassword(t *testing.T) {
	a := validAccount()
	if err := a.SetPassword("correct-horse"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.CheckPassword("correct-horse"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := a.CheckPassword("wrong"); err != ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestLockout tests the failed-login counter and lock window.
func TestLockout(t *testing.T) {
	a := validAccount()
	for i := 0; i < 5; i++ {
		a.RecordFailedLogin()
	}
	if !a.IsLocked() {
		t.Error("expected account to be locked after 5 failures")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("expected lock to clear on reset")
	}
}

// TestActivate tests the pending_review to active transition.
func TestActivate(t *testing.T) {
	a := validAccount()
	if err := a.Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusActive {
		t.Errorf("expected active, got %s", a.Status)
	}
	if err := a.Activate(); err != ErrAlreadyActive {
		t.Errorf("expected ErrAlreadyActive, got %v", err)
	}
}

// TestRoleChecks tests role predicate helpers.
func TestRoleChecks(t *testing.T) {
	a := validAccount()
	a.Role = RoleModerator
	if !a.IsModeratorOrAdmin() {
		t.Error("moderator must pass IsModeratorOrAdmin")
	}
	a.Role = RolePlayer
	if a.IsModeratorOrAdmin() || a.IsAdmin() {
		t.Error("player must not pass moderator/admin checks")
	}
}
