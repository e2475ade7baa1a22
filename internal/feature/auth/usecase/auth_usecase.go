package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"jobtrack_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength is the minimum number of password characters.
	minPasswordLength = 8

	// sessionTTL is the lifetime of a default session.
	sessionTTL = 24 * time.Hour

	// rememberTTL is the lifetime of a "remember me" session.
	rememberTTL = 30 * 24 * time.Hour
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// Returns ErrEmailAlreadyExists when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email exactly.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateProfile persists new name and email values for the user.
	UpdateProfile(ctx context.Context, id uint, name, email string) error

	// UpdatePassword persists a new password hash for the user.
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// TokenGenerator abstracts signed API token generation.
type TokenGenerator interface {
	// GenerateToken creates a signed API token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// LoginInput carries the credentials and request metadata for a login attempt.
type LoginInput struct {
	Email     string
	Password  string
	Remember  bool
	UserAgent string
	IPAddress string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// validatePassword checks that a password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// newSessionID returns a 64-character hex session token from crypto/rand.
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Register creates a new user with a hashed password.
// The display name is optional and may be empty.
func (u *authUsecase) Register(ctx context.Context, email, password, name string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: email, Password: string(hashed), Name: name}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and establishes a session.
// On success it returns the session and a signed API token.
// A bcrypt comparison runs even when the user does not exist, so the response
// time does not reveal whether the email is registered.
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*entity.Session, string, error) {
	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil && err != ErrUserNotFound {
		// A store fault is not a credential failure; let it surface as one.
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	// Dummy hash so bcrypt.CompareHashAndPassword always executes.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))

	// Unified error for unknown email and wrong password.
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return nil, "", err
	}

	ttl := sessionTTL
	if in.Remember {
		ttl = rememberTTL
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		Remember:  in.Remember,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return session, token, nil
}

// Logout revokes the session with the given token.
// Unknown tokens are not an error; logout is idempotent.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && err != ErrSessionNotFound {
		return err
	}
	return nil
}

// ResolveSession maps a session token to the owning user ID.
// Expired or revoked sessions resolve to ErrSessionInvalid.
func (u *authUsecase) ResolveSession(ctx context.Context, sessionID string) (uint, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !session.IsValid() {
		return 0, ErrSessionInvalid
	}
	return session.UserID, nil
}

// CurrentUser returns the user with the given ID.
func (u *authUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile updates the user's display name and email.
// An empty name keeps the stored one.
// Changing the email to one owned by a different user fails with ErrEmailInUse.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, name, email string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = user.Name
	}

	if email != user.Email {
		existing, err := u.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return nil, ErrEmailInUse
		}
		if err != nil && err != ErrUserNotFound {
			return nil, err
		}
	}

	if err := u.users.UpdateProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}
	user.Name = name
	user.Email = email
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
// All of the user's sessions are revoked so stolen cookies stop working.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	return u.sessions.RevokeAllByUserID(ctx, userID)
}
