package property

import "errors"

// Property ドメインのエラー定義
var (
	ErrPropertyNotFound   = errors.New("物件が見つかりません")
	ErrNotPropertyOwner   = errors.New("この物件の所有者ではありません")
	ErrOwnerIDRequired    = errors.New("所有者IDは必須です")
	ErrAddressRequired    = errors.New("住所は必須です")
	ErrCityOrAreaRequired = errors.New("市区町村・エリアは必須です")
	ErrInvalidRating      = errors.New("評価は1から5の間である必要があります")
)
