package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"examcraft/internal/domain"
	"examcraft/internal/repository/models"
	"examcraft/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserDatabaseAdapter implements domain.UserRepository using sqlx.DB
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

func (a *UserDatabaseAdapter) getUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.User
	query := exec.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)
	if err := exec.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&row), nil
}

// GetUserByID returns nil, nil when the user does not exist.
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return a.getUserBy(ctx, "id", id)
}

func (a *UserDatabaseAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.getUserBy(ctx, "email", email)
}

func (a *UserDatabaseAdapter) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return a.getUserBy(ctx, "google_id", googleID)
}

func (a *UserDatabaseAdapter) CountUsers(ctx context.Context) (int, error) {
	exec := GetExecutor(ctx, a.db)
	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func (a *UserDatabaseAdapter) CreateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, a.db)
	query := `INSERT INTO users (
		id, email, name, google_id, password_hash, designation, department, role, created_at, updated_at
	) VALUES (
		:id, :email, :name, :google_id, :password_hash, :designation, :department, :role, :created_at, :updated_at
	)`
	if _, err := exec.NamedExecContext(ctx, query, toModelUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (a *UserDatabaseAdapter) UpdateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, a.db)
	query := `UPDATE users SET
		email = :email,
		name = :name,
		google_id = :google_id,
		password_hash = :password_hash,
		designation = :designation,
		department = :department,
		role = :role,
		updated_at = :updated_at
	WHERE id = :id`
	result, err := exec.NamedExecContext(ctx, query, toModelUser(user))
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	updated, err := rowsAffected(result)
	if err != nil {
		return fmt.Errorf("failed to check update of user %s: %w", user.ID, err)
	}
	if !updated {
		return sql.ErrNoRows
	}
	return nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		GoogleID:     util.NullStringToString(m.GoogleID),
		PasswordHash: util.NullStringToString(m.PasswordHash),
		Designation:  util.NullStringToString(m.Designation),
		Department:   util.NullStringToString(m.Department),
		Role:         domain.Role(m.Role),
		CreatedAt:    util.UnixMilliToTime(m.CreatedAt),
		UpdatedAt:    util.UnixMilliToTime(m.UpdatedAt),
	}
}

func toModelUser(u *domain.User) *models.User {
	return &models.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		GoogleID:     util.StringToNullString(u.GoogleID),
		PasswordHash: util.StringToNullString(u.PasswordHash),
		Designation:  util.StringToNullString(u.Designation),
		Department:   util.StringToNullString(u.Department),
		Role:         string(u.Role),
		CreatedAt:    util.TimeToUnixMilli(u.CreatedAt),
		UpdatedAt:    util.TimeToUnixMilli(u.UpdatedAt),
	}
}
