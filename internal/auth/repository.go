package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"userhub/internal/query"
)

const uniqueViolation = "23505"

// UserRepository owns user records and their credentials. Plaintext
// passwords never reach the database; they are hashed on the way in and
// re-verified against the stored encoding on the way out.
type UserRepository struct {
	DB     *pgxpool.Pool
	Hasher PasswordHasher
}

func NewUserRepository(db *pgxpool.Pool, hasher PasswordHasher) *UserRepository {
	return &UserRepository{DB: db, Hasher: hasher}
}

func (r *UserRepository) Create(ctx context.Context, email, password string) (*User, error) {
	hashed, err := r.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := r.DB.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at, updated_at
	`, uuid.NewString(), email, hashed)

	user, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	return user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id=$1
	`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

// Update replaces email and password and stamps updated_at. The new
// password is hashed exactly like at creation.
func (r *UserRepository) Update(ctx context.Context, id, email, password string) (*User, error) {
	hashed, err := r.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := r.DB.QueryRow(ctx, `
		UPDATE users
		SET email=$1, password_hash=$2, updated_at=NOW()
		WHERE id=$3
		RETURNING id, email, password_hash, created_at, updated_at
	`, email, hashed, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	return user, err
}

// Delete returns the number of rows removed, zero when the user was
// already gone.
func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// VerifyPassword checks candidate against the user's stored hash. A
// corrupt stored hash surfaces as an error, never as a mismatch.
func (r *UserRepository) VerifyPassword(user *User, candidate string) (bool, error) {
	if user == nil || user.PasswordHash == "" {
		return false, nil
	}
	return r.Hasher.Verify(user.PasswordHash, candidate)
}

// ListParams are the optional filters for the user listing. Nil fields
// are skipped when the query is built.
type ListParams struct {
	Page     int64
	PageSize int64
	SortBy   string

	Email        *string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	UpdatedAtGte *time.Time
	UpdatedAtLte *time.Time
}

var userSortKeys = query.SortKeys{
	"id":         "id",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// FindAll lists users through the generic query engine: active filters
// compose conjunctively, the sort key is whitelisted, and pagination is
// applied after filtering.
func (r *UserRepository) FindAll(ctx context.Context, params ListParams) ([]User, int64, error) {
	filters := []query.Filter{
		query.Where("email", query.OpLike, params.Email),
		query.Where("created_at", query.OpGte, params.CreatedAtGte),
		query.Where("created_at", query.OpLte, params.CreatedAtLte),
		query.Where("updated_at", query.OpGte, params.UpdatedAtGte),
		query.Where("updated_at", query.OpLte, params.UpdatedAtLte),
	}

	page, err := query.Paginate(ctx, r.DB,
		`SELECT id, email, password_hash, created_at, updated_at FROM users`,
		filters,
		userSortKeys,
		query.Params{Page: params.Page, PageSize: params.PageSize, SortBy: params.SortBy},
		func(rows pgx.Rows) (User, error) {
			user, err := scanUser(rows)
			if err != nil {
				return User{}, err
			}
			return *user, nil
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.TotalPages, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		id           string
		email        string
		passwordHash string
		createdAt    time.Time
		updatedAt    sql.NullTime
	)

	if err := row.Scan(&id, &email, &passwordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    nullTimePtr(updatedAt),
	}, nil
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
