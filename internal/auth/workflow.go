package auth

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"userhub/internal/i18n"
)

// The workflow talks to its collaborators through these interfaces so
// tests can swap them for fakes and deployments can swap the backing
// stores without touching the sequencing logic.

type UserStore interface {
	Create(ctx context.Context, email, password string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	VerifyPassword(user *User, candidate string) (bool, error)
}

type TokenStore interface {
	Issue(ctx context.Context, email string) (*VerificationToken, error)
	Find(ctx context.Context, id []byte) (*VerificationToken, error)
	Consume(ctx context.Context, id []byte) (bool, error)
}

type SessionManager interface {
	Bind(ctx context.Context, oldID, userID string) (string, error)
	Purge(ctx context.Context, id string) error
	UserID(ctx context.Context, id string) (string, error)
	Renew(ctx context.Context, id string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Workflow sequences invite, register, sign-in, sign-out and who-am-i
// across the credential store, token store and session store, and owns
// the cross-entity checks: token/email match, expiry, and mapping
// lookup failures to the deliberately coarse external errors.
type Workflow struct {
	Users    UserStore
	Tokens   TokenStore
	Sessions SessionManager
	Mailer   Mailer

	// Now is swappable for expiry tests; zero value means time.Now.
	Now func() time.Time
}

func (w *Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// Invite issues a verification token for email and delivers its hex
// form out-of-band. It deliberately does not check whether the address
// already has an account; registration enforces uniqueness later.
func (w *Workflow) Invite(ctx context.Context, email, locale string) error {
	token, err := w.Tokens.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	code := hex.EncodeToString(token.ID)
	hours := int(time.Until(token.ExpiresAt).Round(time.Hour).Hours())
	content := i18n.InviteEmail(locale, code, hours)

	if err := w.Mailer.Send(ctx, email, content.Subject, content.Text, content.HTML); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// Register redeems a token and creates the account. Malformed,
// unknown, mismatched and already-consumed tokens all come back as
// ErrInvalidToken; only a token that unambiguously existed and matched
// gets the distinct ErrTokenExpired.
func (w *Workflow) Register(ctx context.Context, tokenHex, email, password string) (*User, error) {
	id, err := hex.DecodeString(tokenHex)
	if err != nil || len(id) == 0 {
		return nil, ErrInvalidToken
	}

	token, err := w.Tokens.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	if token == nil {
		return nil, ErrInvalidToken
	}

	if token.Email != email {
		return nil, ErrInvalidToken
	}
	if token.ExpiresAt.Before(w.now()) {
		return nil, ErrTokenExpired
	}

	// The conditional delete is the arbiter for concurrent attempts on
	// the same token: only the request that removes the row proceeds.
	consumed, err := w.Tokens.Consume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("consume token: %w", err)
	}
	if !consumed {
		return nil, ErrInvalidToken
	}

	return w.Users.Create(ctx, email, password)
}

// SignIn authenticates and binds the identity to a rotated session
// handle. Unknown email and wrong password are indistinguishable to
// the caller.
func (w *Workflow) SignIn(ctx context.Context, sessionID, email, password string) (*User, string, error) {
	user, err := w.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	ok, err := w.Users.VerifyPassword(user, password)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	newID, err := w.Sessions.Bind(ctx, sessionID, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("bind session: %w", err)
	}
	return user, newID, nil
}

func (w *Workflow) SignOut(ctx context.Context, sessionID string) error {
	return w.Sessions.Purge(ctx, sessionID)
}

// WhoAmI resolves the session identity and re-fetches the user record,
// so a stale session pointing at a deleted user is a hard failure
// rather than a silent 401.
func (w *Workflow) WhoAmI(ctx context.Context, sessionID string) (*User, error) {
	userID, err := w.Sessions.UserID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := w.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("session %s references missing user %s", sessionID, userID)
	}
	return user, nil
}
