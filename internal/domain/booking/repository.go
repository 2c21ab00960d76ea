package booking

import (
	"context"
	"time"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
// 部屋と予約の紐づけは ID ベースの関連（room_id → 予約集合）として
// リポジトリが所有し、一度紐づいた予約が部屋から外れることはない
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByRoomID は部屋に紐づく予約一覧を取得する（空き判定の入力）
	GetByRoomID(ctx context.Context, roomID string) ([]*Booking, error)

	// GetByStudentID は学生の予約一覧を取得する
	GetByStudentID(ctx context.Context, studentID string) ([]*Booking, error)

	// GetByOwnerID は家主が所有する物件の部屋に対する予約一覧を取得する
	GetByOwnerID(ctx context.Context, ownerID string) ([]*Booking, error)

	// GetRequestedStartingBefore は期間開始日が cutoff より前の承認待ち予約を取得する
	GetRequestedStartingBefore(ctx context.Context, cutoff time.Time) ([]*Booking, error)

	// Update は予約の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, b *Booking) error
}
