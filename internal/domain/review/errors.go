package review

import "errors"

// Review ドメインのエラー定義
var (
	ErrReviewNotFound     = errors.New("レビューが見つかりません")
	ErrNotReviewable      = errors.New("承認済みで滞在が終了した予約のみレビューできます")
	ErrNotBookingStudent  = errors.New("自分の予約のみレビューできます")
	ErrBookingIDRequired  = errors.New("予約IDは必須です")
	ErrStudentIDRequired  = errors.New("学生IDは必須です")
	ErrPropertyIDRequired = errors.New("物件IDは必須です")
	ErrInvalidRating      = errors.New("評価は1から5の間である必要があります")
)
