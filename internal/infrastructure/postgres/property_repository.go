package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
)

// propertyRow はDBの行を表す構造体
type propertyRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Address     string    `db:"address"`
	CityOrArea  string    `db:"city_or_area"`
	Description *string   `db:"description"`
	TotalStars  int       `db:"total_stars"`
	ReviewCount int       `db:"review_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *propertyRow) toEntity() *property.Property {
	var desc string
	if r.Description != nil {
		desc = *r.Description
	}
	return &property.Property{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Address:     r.Address,
		CityOrArea:  r.CityOrArea,
		Description: desc,
		Rating:      property.RatingSummary{TotalStars: r.TotalStars, ReviewCount: r.ReviewCount},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const propertyColumns = `id, owner_id, address, city_or_area, description, total_stars, review_count, created_at, updated_at`

// PropertyRepository は物件リポジトリのPostgreSQL実装
type PropertyRepository struct {
	db *sqlx.DB
}

// NewPropertyRepository はPropertyRepositoryを作成する
func NewPropertyRepository(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create は新しい物件を作成する
func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (id, owner_id, address, city_or_area, description, total_stars, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	var desc *string
	if p.Description != "" {
		desc = &p.Description
	}
	if _, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Address, p.CityOrArea, desc,
		p.Rating.TotalStars, p.Rating.ReviewCount, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("物件作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから物件を取得する
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*property.Property, error) {
	var row propertyRow
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, property.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("物件取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByOwnerID は家主の物件一覧を取得する
func (r *PropertyRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*property.Property, error) {
	var rows []propertyRow
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("物件一覧取得に失敗: %w", err)
	}
	return propertyEntities(rows), nil
}

// List は物件一覧を取得する
func (r *PropertyRepository) List(ctx context.Context, limit, offset int) ([]*property.Property, error) {
	var rows []propertyRow
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("物件一覧取得に失敗: %w", err)
	}
	return propertyEntities(rows), nil
}

// Update は物件を更新する
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	query := `
		UPDATE properties
		SET address = $1, city_or_area = $2, description = $3,
		    total_stars = $4, review_count = $5, updated_at = $6
		WHERE id = $7
	`
	var desc *string
	if p.Description != "" {
		desc = &p.Description
	}
	result, err := r.db.ExecContext(ctx, query,
		p.Address, p.CityOrArea, desc, p.Rating.TotalStars, p.Rating.ReviewCount, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("物件更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return property.ErrPropertyNotFound
	}
	return nil
}

// Delete は物件を削除する
// rooms は外部キーの ON DELETE CASCADE で一緒に削除される
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("物件削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return property.ErrPropertyNotFound
	}
	return nil
}

func propertyEntities(rows []propertyRow) []*property.Property {
	result := make([]*property.Property, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ property.Repository = (*PropertyRepository)(nil)
