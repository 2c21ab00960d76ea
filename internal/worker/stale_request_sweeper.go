package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rhyspreston2/go-student-rentals/internal/pkg/logger"
)

// StaleRequestRejecter は開始日を過ぎた予約リクエストを却下するインターフェース
type StaleRequestRejecter interface {
	RejectStaleRequests(ctx context.Context) (int, error)
}

// StaleRequestSweeper は承認されないまま入居開始日を過ぎた
// 予約リクエストを定期的に却下するワーカー
type StaleRequestSweeper struct {
	bookingService StaleRequestRejecter
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewStaleRequestSweeper は新しいスイーパーを作成
func NewStaleRequestSweeper(bs StaleRequestRejecter, interval time.Duration) *StaleRequestSweeper {
	return &StaleRequestSweeper{
		bookingService: bs,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はスイーパーを開始
func (s *StaleRequestSweeper) Start(ctx context.Context) {
	logger.Info("期限切れリクエストスイーパー開始",
		zap.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れリクエストスイーパー停止（コンテキストキャンセル）")
			return
		case <-s.stopCh:
			logger.Info("期限切れリクエストスイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop はスイーパーを停止
func (s *StaleRequestSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// sweep は開始日を過ぎた予約リクエストを却下
func (s *StaleRequestSweeper) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れリクエストの走査開始")

	count, err := s.bookingService.RejectStaleRequests(ctx)
	if err != nil {
		log.Error("期限切れリクエストの走査失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れリクエストを却下", zap.Int("count", count))
	} else {
		log.Debug("期限切れリクエストなし")
	}
}
