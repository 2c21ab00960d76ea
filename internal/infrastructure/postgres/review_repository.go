package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
)

// reviewRow はDBの行を表す構造体
type reviewRow struct {
	ID         string    `db:"id"`
	BookingID  string    `db:"booking_id"`
	StudentID  string    `db:"student_id"`
	PropertyID string    `db:"property_id"`
	Rating     int       `db:"rating"`
	Comment    *string   `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *reviewRow) toEntity() *review.Review {
	var comment string
	if r.Comment != nil {
		comment = *r.Comment
	}
	return &review.Review{
		ID:         r.ID,
		BookingID:  r.BookingID,
		StudentID:  r.StudentID,
		PropertyID: r.PropertyID,
		Rating:     r.Rating,
		Comment:    comment,
		CreatedAt:  r.CreatedAt,
	}
}

const reviewColumns = `id, booking_id, student_id, property_id, rating, comment, created_at`

// ReviewRepository はレビューリポジトリのPostgreSQL実装
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository はReviewRepositoryを作成する
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create は新しいレビューを作成する
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	query := `
		INSERT INTO reviews (id, booking_id, student_id, property_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var comment *string
	if rev.Comment != "" {
		comment = &rev.Comment
	}
	if _, err := r.db.ExecContext(ctx, query,
		rev.ID, rev.BookingID, rev.StudentID, rev.PropertyID, rev.Rating, comment, rev.CreatedAt,
	); err != nil {
		return fmt.Errorf("レビュー作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからレビューを取得する
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	var row reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("レビュー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByPropertyID は物件のレビュー一覧を取得する
func (r *ReviewRepository) GetByPropertyID(ctx context.Context, propertyID string) ([]*review.Review, error) {
	var rows []reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE property_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, propertyID); err != nil {
		return nil, fmt.Errorf("レビュー一覧取得に失敗: %w", err)
	}
	result := make([]*review.Review, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// GetByBookingID は予約に対するレビューを取得する
func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID string) (*review.Review, error) {
	var row reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1`
	if err := r.db.GetContext(ctx, &row, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("レビュー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

var _ review.Repository = (*ReviewRepository)(nil)
