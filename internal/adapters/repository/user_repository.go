package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/ports"
)

const userColumns = `id, name, username, email, password_hash, age, role, batch, phone,
	emergency_contact, address, grade, guardian_name, blood_group, student_id,
	join_date, created_at, updated_at, deleted_at`

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, name, username, email, password_hash, age, role, batch,
			phone, emergency_contact, address, grade, guardian_name, blood_group, student_id, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Username, user.Email, user.PasswordHash,
		user.Age, user.Role, user.Batch, user.Phone, user.EmergencyContact,
		user.Address, user.Grade, user.GuardianName, user.BloodGroup,
		user.StudentID, user.JoinDate,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getByField(ctx, "id", id)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getByField(ctx, "username", username)
}

func (r *UserRepositoryImpl) GetByName(ctx context.Context, name string) (*entities.User, error) {
	return r.getByField(ctx, "name", name)
}

func (r *UserRepositoryImpl) getByField(ctx context.Context, field string, value interface{}) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1 AND deleted_at IS NULL`, userColumns, field)

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", field, err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entities.User) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, email = $4, age = $5, role = $6, batch = $7,
			phone = $8, emergency_contact = $9, address = $10, grade = $11,
			guardian_name = $12, blood_group = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Username, user.Email, user.Age, user.Role,
		user.Batch, user.Phone, user.EmergencyContact, user.Address,
		user.Grade, user.GuardianName, user.BloodGroup,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET deleted_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}
