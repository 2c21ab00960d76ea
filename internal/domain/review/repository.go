package review

import "context"

// Repository はレビューリポジトリのインターフェース
type Repository interface {
	// Create は新しいレビューを作成する
	Create(ctx context.Context, r *Review) error

	// GetByID はIDからレビューを取得する
	GetByID(ctx context.Context, id string) (*Review, error)

	// GetByPropertyID は物件のレビュー一覧を取得する
	GetByPropertyID(ctx context.Context, propertyID string) ([]*Review, error)

	// GetByBookingID は予約に対するレビューを取得する
	GetByBookingID(ctx context.Context, bookingID string) (*Review, error)
}
