package services

import (
	"fmt"
	"strings"

	"github.com/lborres/easel/core"
	"github.com/lborres/easel/pkg/crypto"
)

const minPasswordLength = 8

type AuthService struct {
	db             core.AuthStorage
	passwordHasher crypto.PasswordHandler
	sessions       *SessionManager
}

func NewAuthService(db core.AuthStorage, sessions *SessionManager, passwordHasher crypto.PasswordHandler) *AuthService {
	return &AuthService{
		db:             db,
		passwordHasher: passwordHasher,
		sessions:       sessions,
	}
}

// SignUpInput contains the data needed to register a new user
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignUpResult carries the newly registered user. There is deliberately no
// session here: registration does not sign the user in, they must sign in
// afterwards.
type SignUpResult struct {
	User *core.User `json:"user"`
}

// SignUp registers a new user with email and password
func (s *AuthService) SignUp(input SignUpInput) (*SignUpResult, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	// Step 1: Check if user already exists
	existingUser, err := s.db.GetUserByEmail(input.Email)
	if err != nil && err != core.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, core.ErrUserExists
	}

	// Step 2: Hash the password
	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Create the user
	user := &core.User{
		Email:         input.Email,
		EmailVerified: false,
		Name:          input.Name,
	}

	err = s.db.CreateUser(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 4: Create a credential account for this user
	account := &core.Account{
		UserID:     user.ID,
		ProviderID: "credential", // This is email/password authentication
		AccountID:  user.ID,      // For credential provider, account ID = user ID
		Password:   &hashedPassword,
	}

	err = s.db.CreateAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &SignUpResult{User: user}, nil
}

// SignInInput contains the credentials for authentication
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult contains the authenticated user and their session
type SignInResult struct {
	User    *core.User    `json:"user"`
	Session *core.Session `json:"session"`
	Token   string        `json:"token"` // The raw token (not the hash)
}

// SignIn authenticates a user with email and password
func (s *AuthService) SignIn(input SignInInput, ipAddress, userAgent string) (*SignInResult, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	// Step 1: Find the user by email
	user, err := s.db.GetUserByEmail(input.Email)
	if err != nil {
		if err == core.ErrUserNotFound {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Get the credential account for this user
	accounts, err := s.db.GetAccountByUserAndProvider(user.ID, "credential")
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if len(accounts) == 0 {
		return nil, core.ErrInvalidCredentials
	}

	account := accounts[0]
	if account.Password == nil {
		return nil, core.ErrInvalidCredentials
	}

	// Step 3: Verify the password
	valid, err := s.passwordHasher.Verify(input.Password, *account.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	// Step 4: Create a new session
	sessionResult, err := s.sessions.Create(user.ID, ipAddress, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SignInResult{
		User:    user,
		Session: sessionResult.Session,
		Token:   sessionResult.Token,
	}, nil
}

// SignOut invalidates the current session
func (s *AuthService) SignOut(token string) error {
	err := s.sessions.Destroy(token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetSession retrieves session data by token. Used both by the HTTP
// middleware and by session restore at startup.
func (s *AuthService) GetSession(token string) (*core.SessionData, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		if err == core.ErrSessionNotFound {
			return nil, core.ErrInvalidToken
		}
		return nil, err
	}

	user, err := s.db.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &core.SessionData{
		User:    user,
		Session: session,
	}, nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return core.ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return core.ErrInvalidEmail
	}
	if password == "" {
		return core.ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return core.ErrPasswordTooShort
	}
	return nil
}
