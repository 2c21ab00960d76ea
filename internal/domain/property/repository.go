package property

import "context"

// Repository は物件リポジトリのインターフェース
type Repository interface {
	// Create は新しい物件を作成する
	Create(ctx context.Context, p *Property) error

	// GetByID はIDから物件を取得する
	GetByID(ctx context.Context, id string) (*Property, error)

	// GetByOwnerID は家主の物件一覧を取得する
	GetByOwnerID(ctx context.Context, ownerID string) ([]*Property, error)

	// List は物件一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Property, error)

	// Update は物件を更新する
	Update(ctx context.Context, p *Property) error

	// Delete は物件を削除する（紐づく部屋も削除される）
	Delete(ctx context.Context, id string) error
}
