package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong password or unknown email.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrWeakPassword is returned when a sign-up password fails the length policy.
var ErrWeakPassword = errors.New("password must be at least 6 characters")

const minPasswordLength = 6

// Service owns the authentication session lifecycle: sign-up, sign-in,
// sign-out, and restoring an identity from a session token. State changes are
// published to subscribers so side effects (profile provisioning) stay
// decoupled from the sign-in path.
type Service struct {
	accounts   AccountRepository
	sessions   SessionStore
	notifier   *Notifier
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(accounts AccountRepository, sessions SessionStore, bcryptCost int) *Service {
	return &Service{
		accounts:   accounts,
		sessions:   sessions,
		notifier:   NewNotifier(),
		bcryptCost: bcryptCost,
	}
}

// Subscribe registers a listener for auth state changes and returns its
// unsubscribe handle.
func (s *Service) Subscribe(fn func(Event)) func() {
	return s.notifier.Subscribe(fn)
}

// Close tears down the auth state change stream. Called once at shutdown.
func (s *Service) Close() {
	s.notifier.Close()
}

// SignUp registers a new account and signs it in. metadata carries the
// profile fields collected at registration; the user profile row itself is
// provisioned later, in the background, never here. Returns the new identity
// and its session token.
func (s *Service) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*Identity, string, error) {
	if len(password) < minPasswordLength {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}
	account := &Account{
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     metadata,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	identity := identityFromAccount(account)
	token := s.startSession(ctx, identity)

	return identity, token, nil
}

// SignIn verifies credentials and opens a session. Profile provisioning is
// triggered through the SignedIn event; the caller is never blocked on it.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Identity, string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("looking up account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	identity := identityFromAccount(account)
	token := s.startSession(ctx, identity)
	if token == "" {
		return nil, "", fmt.Errorf("opening session for %s: session store unavailable", account.ID)
	}

	return identity, token, nil
}

// SignOut invalidates the session. A store failure is logged and otherwise
// ignored: the caller always observes signed-out.
func (s *Service) SignOut(ctx context.Context, token string) {
	if err := s.sessions.Delete(ctx, token); err != nil {
		slog.Error("sign out failed to invalidate session", "error", err)
	}
	s.notifier.Publish(Event{Type: EventSignedOut})
}

// Resolve restores the identity behind a session token. Every failure mode
// degrades to anonymous (nil) rather than surfacing an error, so callers
// always reach a decided state.
func (s *Service) Resolve(ctx context.Context, token string) *Identity {
	if token == "" {
		return nil
	}

	accountID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("session resolution failed, treating as anonymous", "error", err)
		}
		return nil
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		slog.Warn("account lookup for session failed, treating as anonymous", "error", err)
		return nil
	}

	return identityFromAccount(account)
}

// startSession opens a session and announces the sign-in. A session store
// failure during sign-up is non-fatal: the account exists, the user just is
// not signed in yet.
func (s *Service) startSession(ctx context.Context, identity *Identity) string {
	token, err := s.sessions.Create(ctx, identity.ID)
	if err != nil {
		slog.Error("failed to open session", "error", err, "accountId", identity.ID)
		return ""
	}

	s.notifier.Publish(Event{Type: EventSignedIn, Identity: identity})
	return token
}
