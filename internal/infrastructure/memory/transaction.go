// Package memory はテスト・ローカル実行向けのインメモリ実装を提供する
package memory

import (
	"context"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/transaction"
)

// noopTx は何もしないトランザクション
// インメモリ実装では各操作が即時反映されるため、コミット・ロールバックは不要
type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

// TxManager はインメモリ実装向けのトランザクションマネージャー
type TxManager struct{}

// NewTxManager は新しいTxManagerを作成する
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Begin は何もしないトランザクションを返す
func (m *TxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	return noopTx{}, nil
}

var _ transaction.Manager = (*TxManager)(nil)
