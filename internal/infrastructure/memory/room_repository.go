package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
)

// RoomRepository は部屋リポジトリのインメモリ実装
type RoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room

	// 検索時の都市条件解決に使う
	properties *PropertyRepository
}

// NewRoomRepository はRoomRepositoryを作成する
// properties は検索の都市条件で参照するため SetProperties で後から設定する
func NewRoomRepository() *RoomRepository {
	return &RoomRepository{rooms: make(map[string]*room.Room)}
}

// SetProperties は都市条件の解決に使う物件リポジトリを設定する
func (r *RoomRepository) SetProperties(properties *PropertyRepository) {
	r.properties = properties
}

func cloneRoom(rm *room.Room) *room.Room {
	c := *rm
	c.Amenities = append([]room.Amenity(nil), rm.Amenities...)
	return &c
}

// Create は新しい部屋を作成する
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID] = cloneRoom(rm)
	return nil
}

// GetByID はIDから部屋を取得する
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	return cloneRoom(rm), nil
}

// GetByPropertyID は物件に属する部屋一覧を取得する
func (r *RoomRepository) GetByPropertyID(ctx context.Context, propertyID string) ([]*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*room.Room
	for _, rm := range r.rooms {
		if rm.PropertyID == propertyID {
			result = append(result, cloneRoom(rm))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Search は条件に合致する部屋を検索する
func (r *RoomRepository) Search(ctx context.Context, criteria room.SearchCriteria) ([]*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*room.Room
	for _, rm := range r.rooms {
		if !r.matches(ctx, rm, criteria) {
			continue
		}
		result = append(result, cloneRoom(rm))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *RoomRepository) matches(ctx context.Context, rm *room.Room, criteria room.SearchCriteria) bool {
	if criteria.CityOrArea != "" {
		if r.properties == nil {
			return false
		}
		p, err := r.properties.GetByID(ctx, rm.PropertyID)
		if err != nil || !strings.EqualFold(p.CityOrArea, criteria.CityOrArea) {
			return false
		}
	}
	if criteria.RoomType != "" && rm.Type != criteria.RoomType {
		return false
	}
	if criteria.MinRent != nil && rm.MonthlyRent < *criteria.MinRent {
		return false
	}
	if criteria.MaxRent != nil && rm.MonthlyRent > *criteria.MaxRent {
		return false
	}
	if !criteria.RequiredPeriod.IsZero() && !rm.Availability.Contains(criteria.RequiredPeriod) {
		return false
	}
	return true
}

// Update は部屋を更新する
func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[rm.ID]; !ok {
		return room.ErrRoomNotFound
	}
	r.rooms[rm.ID] = cloneRoom(rm)
	return nil
}

// Delete は部屋を削除する
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return room.ErrRoomNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *RoomRepository) deleteByPropertyID(propertyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rm := range r.rooms {
		if rm.PropertyID == propertyID {
			delete(r.rooms, id)
		}
	}
}

var _ room.Repository = (*RoomRepository)(nil)
