package daterange

import "errors"

// DateRange ドメインのエラー定義
var (
	ErrInvalidRange = errors.New("開始日は終了日より前である必要があります（範囲は [start, end)）")
)
