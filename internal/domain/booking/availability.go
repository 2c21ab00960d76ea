package booking

import "github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"

// IsRoomFree は既存予約の集合に対して期間が空いているかを判定する純粋関数
// ブロックするのは ACCEPTED の予約のみで、REQUESTED は承認されるまで
// 空き判定に影響しない
// 部屋の状態はリクエスト時と承認時の間に変化しうるため、結果は
// キャッシュせず必要な時点で毎回呼び直すこと
func IsRoomFree(existing []*Booking, period daterange.DateRange) bool {
	for _, b := range existing {
		if b.Status != StatusAccepted {
			continue
		}
		if b.Period.Overlaps(period) {
			return false
		}
	}
	return true
}
