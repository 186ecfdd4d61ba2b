package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_active, created_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.IsActive, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id common.UUID, update user.ProfileUpdate) (*user.User, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			phone = COALESCE($3, phone)
		WHERE id = $4`,
		update.FirstName, update.LastName, update.Phone, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update profile", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM users WHERE role = $1 AND is_active`, user.RoleAdmin)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list admin emails", err)
	}
	defer rows.Close()
	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan admin email", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *UserRepository) CountByRole(ctx context.Context, role user.Role) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count users", err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
