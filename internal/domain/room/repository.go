package room

import (
	"context"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
)

// SearchCriteria は部屋検索の条件
// ゼロ値のフィールドは条件として適用されない
type SearchCriteria struct {
	CityOrArea     string
	RoomType       Type
	MinRent        *int
	MaxRent        *int
	RequiredPeriod daterange.DateRange
}

// Repository は部屋リポジトリのインターフェース
type Repository interface {
	// Create は新しい部屋を作成する
	Create(ctx context.Context, r *Room) error

	// GetByID はIDから部屋を取得する
	GetByID(ctx context.Context, id string) (*Room, error)

	// GetByPropertyID は物件に属する部屋一覧を取得する
	GetByPropertyID(ctx context.Context, propertyID string) ([]*Room, error)

	// Search は条件に合致する部屋を検索する
	// 期間条件は貸出可能期間への包含のみを判定し、承認済み予約との
	// 重複判定は予約側のロジックが担う
	Search(ctx context.Context, criteria SearchCriteria) ([]*Room, error)

	// Update は部屋を更新する
	Update(ctx context.Context, r *Room) error

	// Delete は部屋を削除する
	Delete(ctx context.Context, id string) error
}
