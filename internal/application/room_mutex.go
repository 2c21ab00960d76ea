package application

import "sync"

// roomMutex は部屋単位の排他制御を提供する
// 「空き確認 → 状態確定」の一連の区間は check-then-act であり、同じ部屋への
// リクエスト・承認が並行して走ると承認済み予約の重複が生じうるため、
// 部屋IDごとのロックでこの区間を直列化する
type roomMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomMutex() *roomMutex {
	return &roomMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock は部屋のロックを取得し、解放用の関数を返す
func (m *roomMutex) Lock(roomID string) func() {
	m.mu.Lock()
	l, ok := m.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[roomID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
