package user

import "errors"

// User ドメインのエラー定義
var (
	ErrUserNotFound          = errors.New("ユーザーが見つかりません")
	ErrEmailAlreadyInUse     = errors.New("メールアドレスは既に使用されています")
	ErrAccountDeactivated    = errors.New("アカウントは無効化されています")
	ErrNotStudent            = errors.New("学生アカウントではありません")
	ErrNotHomeowner          = errors.New("家主アカウントではありません")
	ErrNameRequired          = errors.New("名前は必須です")
	ErrEmailRequired         = errors.New("メールアドレスは必須です")
	ErrUniversityRequired    = errors.New("大学名は必須です")
	ErrStudentNumberRequired = errors.New("学籍番号は必須です")
)
