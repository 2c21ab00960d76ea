package room

import "errors"

// Room ドメインのエラー定義
var (
	ErrRoomNotFound         = errors.New("部屋が見つかりません")
	ErrPropertyIDRequired   = errors.New("物件IDは必須です")
	ErrRoomTypeRequired     = errors.New("部屋種別は必須です")
	ErrNegativeRent         = errors.New("家賃は負の値にできません")
	ErrAvailabilityRequired = errors.New("貸出可能期間は必須です")
)
