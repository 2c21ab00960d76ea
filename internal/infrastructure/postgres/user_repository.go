package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// userRow はDBの行を表す構造体
type userRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Role           string    `db:"role"`
	Status         string    `db:"status"`
	UniversityName *string   `db:"university_name"`
	StudentNumber  *string   `db:"student_number"`
	Verified       bool      `db:"verified"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *userRow) toEntity() *user.User {
	var uni, num string
	if r.UniversityName != nil {
		uni = *r.UniversityName
	}
	if r.StudentNumber != nil {
		num = *r.StudentNumber
	}
	return &user.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Role:           user.Role(r.Role),
		Status:         user.AccountStatus(r.Status),
		UniversityName: uni,
		StudentNumber:  num,
		Verified:       r.Verified,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

const userColumns = `id, name, email, role, status, university_name, student_number, verified, created_at, updated_at`

// UserRepository はユーザーリポジトリのPostgreSQL実装
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository はUserRepositoryを作成する
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create は新しいユーザーを作成する
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, role, status, university_name, student_number, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var uni, num *string
	if u.UniversityName != "" {
		uni = &u.UniversityName
	}
	if u.StudentNumber != "" {
		num = &u.StudentNumber
	}
	if _, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, string(u.Role), string(u.Status), uni, num, u.Verified, u.CreatedAt, u.UpdatedAt,
	); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("ユーザー作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからユーザーを取得する
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByEmail はメールアドレスからユーザーを取得する
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = $1`
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List はユーザー一覧を取得する
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("ユーザー一覧取得に失敗: %w", err)
	}
	result := make([]*user.User, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// Update はユーザーを更新する
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `UPDATE users SET name = $1, status = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, u.Name, string(u.Status), u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("ユーザー更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
