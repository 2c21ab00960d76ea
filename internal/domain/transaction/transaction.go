package transaction

import "context"

// Tx はトランザクションを表すインターフェース
// ドメイン層・アプリケーション層が永続化の実装（sqlx 等）に
// 依存しないようにするための抽象化
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
