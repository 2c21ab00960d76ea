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

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
)

// roomRow はDBの行を表す構造体
type roomRow struct {
	ID                string         `db:"id"`
	PropertyID        string         `db:"property_id"`
	Type              string         `db:"room_type"`
	MonthlyRent       int            `db:"monthly_rent"`
	Description       *string        `db:"description"`
	Amenities         pq.StringArray `db:"amenities"`
	AvailabilityStart time.Time      `db:"availability_start"`
	AvailabilityEnd   time.Time      `db:"availability_end"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r *roomRow) toEntity() *room.Room {
	var desc string
	if r.Description != nil {
		desc = *r.Description
	}
	amenities := make([]room.Amenity, len(r.Amenities))
	for i, a := range r.Amenities {
		amenities[i] = room.Amenity(a)
	}
	return &room.Room{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		Type:         room.Type(r.Type),
		MonthlyRent:  r.MonthlyRent,
		Description:  desc,
		Amenities:    amenities,
		Availability: daterange.DateRange{Start: r.AvailabilityStart, End: r.AvailabilityEnd},
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const roomColumns = `id, property_id, room_type, monthly_rent, description, amenities, availability_start, availability_end, created_at, updated_at`

// RoomRepository は部屋リポジトリのPostgreSQL実装
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository はRoomRepositoryを作成する
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create は新しい部屋を作成する
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	query := `
		INSERT INTO rooms (id, property_id, room_type, monthly_rent, description, amenities, availability_start, availability_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var desc *string
	if rm.Description != "" {
		desc = &rm.Description
	}
	if _, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.PropertyID, string(rm.Type), rm.MonthlyRent, desc, amenityArray(rm.Amenities),
		rm.Availability.Start, rm.Availability.End, rm.CreatedAt, rm.UpdatedAt,
	); err != nil {
		return fmt.Errorf("部屋作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから部屋を取得する
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	var row roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("部屋取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByPropertyID は物件に属する部屋一覧を取得する
func (r *RoomRepository) GetByPropertyID(ctx context.Context, propertyID string) ([]*room.Room, error) {
	var rows []roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE property_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, propertyID); err != nil {
		return nil, fmt.Errorf("部屋一覧取得に失敗: %w", err)
	}
	return roomEntities(rows), nil
}

// Search は条件に合致する部屋を検索する
// 市区町村・エリアの条件は物件側の列に対して適用する
func (r *RoomRepository) Search(ctx context.Context, criteria room.SearchCriteria) ([]*room.Room, error) {
	query := `
		SELECT r.id, r.property_id, r.room_type, r.monthly_rent, r.description, r.amenities,
		       r.availability_start, r.availability_end, r.created_at, r.updated_at
		FROM rooms r
		JOIN properties p ON p.id = r.property_id
	`
	var conds []string
	var args []interface{}

	if strings.TrimSpace(criteria.CityOrArea) != "" {
		args = append(args, strings.ToLower(strings.TrimSpace(criteria.CityOrArea)))
		conds = append(conds, fmt.Sprintf("LOWER(p.city_or_area) = $%d", len(args)))
	}
	if criteria.RoomType != "" {
		args = append(args, string(criteria.RoomType))
		conds = append(conds, fmt.Sprintf("r.room_type = $%d", len(args)))
	}
	if criteria.MinRent != nil {
		args = append(args, *criteria.MinRent)
		conds = append(conds, fmt.Sprintf("r.monthly_rent >= $%d", len(args)))
	}
	if criteria.MaxRent != nil {
		args = append(args, *criteria.MaxRent)
		conds = append(conds, fmt.Sprintf("r.monthly_rent <= $%d", len(args)))
	}
	if !criteria.RequiredPeriod.IsZero() {
		args = append(args, criteria.RequiredPeriod.Start)
		conds = append(conds, fmt.Sprintf("r.availability_start <= $%d", len(args)))
		args = append(args, criteria.RequiredPeriod.End)
		conds = append(conds, fmt.Sprintf("r.availability_end >= $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.monthly_rent"

	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("部屋検索に失敗: %w", err)
	}
	return roomEntities(rows), nil
}

// Update は部屋を更新する
func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	query := `
		UPDATE rooms
		SET monthly_rent = $1, description = $2, amenities = $3,
		    availability_start = $4, availability_end = $5, updated_at = $6
		WHERE id = $7
	`
	var desc *string
	if rm.Description != "" {
		desc = &rm.Description
	}
	result, err := r.db.ExecContext(ctx, query,
		rm.MonthlyRent, desc, amenityArray(rm.Amenities),
		rm.Availability.Start, rm.Availability.End, rm.UpdatedAt, rm.ID,
	)
	if err != nil {
		return fmt.Errorf("部屋更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

// Delete は部屋を削除する
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("部屋削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

func amenityArray(amenities []room.Amenity) pq.StringArray {
	arr := make(pq.StringArray, len(amenities))
	for i, a := range amenities {
		arr[i] = string(a)
	}
	return arr
}

func roomEntities(rows []roomRow) []*room.Room {
	result := make([]*room.Room, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ room.Repository = (*RoomRepository)(nil)
