package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evoltsoft/station-api/internal/platform/logger"
	"github.com/evoltsoft/station-api/internal/user/domain"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserConflict = errors.New("user with this email or phone already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindByEmailOrPhone(ctx context.Context, email, phone *string) (*domain.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, phone, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	var email, phone sql.NullString
	if user.Email != nil {
		email = sql.NullString{String: *user.Email, Valid: true}
	}
	if user.Phone != nil {
		phone = sql.NullString{String: *user.Phone, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, user.Name, email, phone, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// Unique violation on email or phone, code 23505
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserConflict
		}
		logger.Error("CreateUser: failed to insert user", err)
		return err
	}
	return nil
}

// FindByEmailOrPhone matches on whichever identifiers are supplied, combined
// with OR. At least one of email/phone must be non-nil.
func (r *postgresUserRepository) FindByEmailOrPhone(ctx context.Context, email, phone *string) (*domain.User, error) {
	conds := []string{}
	args := []interface{}{}
	if email != nil {
		args = append(args, *email)
		conds = append(conds, fmt.Sprintf("email = $%d", len(args)))
	}
	if phone != nil {
		args = append(args, *phone)
		conds = append(conds, fmt.Sprintf("phone = $%d", len(args)))
	}
	if len(conds) == 0 {
		return nil, ErrUserNotFound
	}

	query := `SELECT id, name, email, phone, password_hash, created_at, updated_at FROM users WHERE ` +
		strings.Join(conds, " OR ")

	user := &domain.User{}
	var dbEmail, dbPhone sql.NullString
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Name, &dbEmail, &dbPhone, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("FindByEmailOrPhone: query failed", err)
		return nil, err
	}
	if dbEmail.Valid {
		user.Email = &dbEmail.String
	}
	if dbPhone.Valid {
		user.Phone = &dbPhone.String
	}
	return user, nil
}
