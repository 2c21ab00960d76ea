package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/transaction"
)

// bookingRow はDBの行を表す構造体
type bookingRow struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	RoomID      string    `db:"room_id"`
	PeriodStart time.Time `db:"period_start"`
	PeriodEnd   time.Time `db:"period_end"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// toEntity はbookingRowをBookingエンティティに変換する
func (r *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID:        r.ID,
		StudentID: r.StudentID,
		RoomID:    r.RoomID,
		Period:    daterange.DateRange{Start: r.PeriodStart, End: r.PeriodEnd},
		Status:    booking.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const bookingColumns = `id, student_id, room_id, period_start, period_end, status, created_at, updated_at`

// BookingRepository は予約リポジトリのPostgreSQL実装
// 部屋と予約の関連は bookings.room_id 列として保持する
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create は新しい予約を作成する
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `
		INSERT INTO bookings (id, student_id, room_id, period_start, period_end, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := sqlxTx.ExecContext(ctx, query,
		b.ID, b.StudentID, b.RoomID, b.Period.Start, b.Period.End, string(b.Status), b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから予約を取得する
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByRoomID は部屋に紐づく予約一覧を取得する
func (r *BookingRepository) GetByRoomID(ctx context.Context, roomID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, roomID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// GetByStudentID は学生の予約一覧を取得する
func (r *BookingRepository) GetByStudentID(ctx context.Context, studentID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE student_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// GetByOwnerID は家主が所有する物件の部屋に対する予約一覧を取得する
func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `
		SELECT b.id, b.student_id, b.room_id, b.period_start, b.period_end, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN properties p ON p.id = r.property_id
		WHERE p.owner_id = $1
		ORDER BY b.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// GetRequestedStartingBefore は期間開始日が cutoff 以前の承認待ち予約を取得する
func (r *BookingRepository) GetRequestedStartingBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'requested' AND period_start < $1`
	if err := r.db.SelectContext(ctx, &rows, query, cutoff); err != nil {
		return nil, fmt.Errorf("承認待ち予約取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// Update は予約の状態を更新する
func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func toEntities(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)
