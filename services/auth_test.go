package services

import (
	"errors"
	"testing"
	"time"

	"github.com/lborres/easel/core"
	"github.com/lborres/easel/pkg/crypto"
)

func newAuthFixture() (*AuthService, *FakeStorage) {
	storage := NewFakeStorage()
	sm := NewSessionManager(core.SessionConfig{MaxAge: 24 * time.Hour}, storage, nil)
	return NewAuthService(storage, sm, crypto.NewArgon2()), storage
}

// Requirement: SignUp registers the account but does not sign the user
// in - there is no session in the result.
func TestAuthService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*FakeStorage)
		wantErr  error
	}{
		{
			name:     "creates user for valid input",
			email:    "alice@example.com",
			password: "SecurePass123!",
		},
		{
			name:     "returns error for empty email",
			email:    "",
			password: "SecurePass123!",
			wantErr:  core.ErrEmailRequired,
		},
		{
			name:     "returns error for malformed email",
			email:    "not-an-email",
			password: "SecurePass123!",
			wantErr:  core.ErrInvalidEmail,
		},
		{
			name:     "returns error for empty password",
			email:    "alice@example.com",
			password: "",
			wantErr:  core.ErrPasswordRequired,
		},
		{
			name:     "returns error for short password",
			email:    "alice@example.com",
			password: "short",
			wantErr:  core.ErrPasswordTooShort,
		},
		{
			name:     "returns error for duplicate email",
			email:    "alice@example.com",
			password: "SecurePass123!",
			setup: func(storage *FakeStorage) {
				_ = storage.CreateUser(&core.User{Email: "alice@example.com"})
			},
			wantErr: core.ErrUserExists,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, storage := newAuthFixture()
			if test.setup != nil {
				test.setup(storage)
			}

			result, err := service.SignUp(SignUpInput{
				Email:    test.email,
				Password: test.password,
			})

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("SignUp() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SignUp() error = %v", err)
			}
			if result.User == nil || result.User.ID == "" {
				t.Fatal("SignUp() returned no user")
			}
			if result.User.EmailVerified {
				t.Error("EmailVerified = true on fresh sign-up, want false")
			}
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	service, _ := newAuthFixture()

	if _, err := service.SignUp(SignUpInput{Email: "bob@example.com", Password: "SecurePass123!"}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	t.Run("valid credentials yield a session token", func(t *testing.T) {
		result, err := service.SignIn(SignInInput{Email: "bob@example.com", Password: "SecurePass123!"}, "127.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if result.Token == "" {
			t.Error("SignIn() returned no token")
		}
		if result.Session == nil || result.Session.UserID != result.User.ID {
			t.Error("SignIn() session does not reference the user")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.SignIn(SignInInput{Email: "bob@example.com", Password: "WrongPass1234"}, "", "")
		if !errors.Is(err, core.ErrInvalidCredentials) {
			t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := service.SignIn(SignInInput{Email: "nobody@example.com", Password: "SecurePass123!"}, "", "")
		if !errors.Is(err, core.ErrInvalidCredentials) {
			t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_SignOutAndGetSession(t *testing.T) {
	service, _ := newAuthFixture()

	if _, err := service.SignUp(SignUpInput{Email: "carol@example.com", Password: "SecurePass123!"}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	result, err := service.SignIn(SignInInput{Email: "carol@example.com", Password: "SecurePass123!"}, "", "")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	sd, err := service.GetSession(result.Token)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if sd.User.Email != "carol@example.com" {
		t.Errorf("GetSession() user = %q, want carol@example.com", sd.User.Email)
	}

	if err := service.SignOut(result.Token); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	if _, err := service.GetSession(result.Token); err == nil {
		t.Error("GetSession() after sign-out error = nil, want error")
	}
}

func TestAuthService_GetSessionExpired(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(core.SessionConfig{MaxAge: -time.Minute}, storage, nil)
	service := NewAuthService(storage, sm, crypto.NewArgon2())

	if _, err := service.SignUp(SignUpInput{Email: "dave@example.com", Password: "SecurePass123!"}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	result, err := service.SignIn(SignInInput{Email: "dave@example.com", Password: "SecurePass123!"}, "", "")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if _, err := service.GetSession(result.Token); !errors.Is(err, core.ErrSessionExpired) {
		t.Errorf("GetSession() error = %v, want ErrSessionExpired", err)
	}
}
