package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tokenIDBytes = 16

// TokenRepository issues and looks up verification tokens. Tokens are
// write-once: there is no update path, and consumption is a single
// conditional delete so two concurrent registrations cannot both spend
// the same token.
type TokenRepository struct {
	DB  *pgxpool.Pool
	TTL time.Duration
}

func NewTokenRepository(db *pgxpool.Pool, ttl time.Duration) *TokenRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenRepository{DB: db, TTL: ttl}
}

func (r *TokenRepository) Issue(ctx context.Context, email string) (*VerificationToken, error) {
	// Opportunistic cleanup on the write path; expiry is still checked
	// at use time, so nothing depends on this succeeding.
	_, _ = r.DeleteExpired(ctx)

	id := make([]byte, tokenIDBytes)
	if _, err := rand.Read(id); err != nil {
		return nil, fmt.Errorf("generate token id: %w", err)
	}

	row := r.DB.QueryRow(ctx, `
		INSERT INTO email_verification_tokens (id, email, expires_at)
		VALUES ($1, $2, NOW() + $3::interval)
		RETURNING id, email, created_at, expires_at
	`, id, email, fmt.Sprintf("%d seconds", int64(r.TTL.Seconds())))

	return scanToken(row)
}

// Find looks a token up by its raw identifier bytes. Expiry is not
// filtered here; the workflow checks it explicitly at use time so the
// expired case stays distinguishable from the unknown one.
func (r *TokenRepository) Find(ctx context.Context, id []byte) (*VerificationToken, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, email, created_at, expires_at
		FROM email_verification_tokens
		WHERE id=$1
	`, id)

	token, err := scanToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return token, err
}

// Consume deletes the token and reports whether this call was the one
// that removed it. A false result means some other request got there
// first (or the token never existed).
func (r *TokenRepository) Consume(ctx context.Context, id []byte) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM email_verification_tokens WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteExpired clears out tokens past their expiry. Opportunistic
// cleanup only; correctness never depends on it running.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM email_verification_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanToken(row pgx.Row) (*VerificationToken, error) {
	var t VerificationToken
	if err := row.Scan(&t.ID, &t.Email, &t.CreatedAt, &t.ExpiresAt); err != nil {
		return nil, err
	}
	return &t, nil
}
