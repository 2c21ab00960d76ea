package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound     = errors.New("予約が見つかりません")
	ErrBookingNotRequested = errors.New("承認待ちの予約のみ操作できます")
	ErrNotBookingOwner     = errors.New("自分の予約のみキャンセルできます")
	ErrRoomNotAvailable    = errors.New("指定期間は既に承認済みの予約と重複しています")
	ErrOutsideAvailability = errors.New("指定期間は部屋の貸出可能期間外です")
	ErrStudentIDRequired   = errors.New("学生IDは必須です")
	ErrRoomIDRequired      = errors.New("部屋IDは必須です")
	ErrPeriodRequired      = errors.New("予約期間は必須です")
)
