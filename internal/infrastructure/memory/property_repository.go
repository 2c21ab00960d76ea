package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
)

// PropertyRepository は物件リポジトリのインメモリ実装
type PropertyRepository struct {
	mu         sync.RWMutex
	properties map[string]*property.Property

	// Delete 時に紐づく部屋を消すための参照
	rooms *RoomRepository
}

// NewPropertyRepository はPropertyRepositoryを作成する
func NewPropertyRepository(rooms *RoomRepository) *PropertyRepository {
	return &PropertyRepository{
		properties: make(map[string]*property.Property),
		rooms:      rooms,
	}
}

func cloneProperty(p *property.Property) *property.Property {
	c := *p
	return &c
}

// Create は新しい物件を作成する
func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[p.ID] = cloneProperty(p)
	return nil
}

// GetByID はIDから物件を取得する
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	return cloneProperty(p), nil
}

// GetByOwnerID は家主の物件一覧を取得する
func (r *PropertyRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*property.Property
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			result = append(result, cloneProperty(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// List は物件一覧を取得する
func (r *PropertyRepository) List(ctx context.Context, limit, offset int) ([]*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*property.Property, 0, len(r.properties))
	for _, p := range r.properties {
		all = append(all, cloneProperty(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*property.Property{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Update は物件を更新する
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[p.ID]; !ok {
		return property.ErrPropertyNotFound
	}
	r.properties[p.ID] = cloneProperty(p)
	return nil
}

// Delete は物件と紐づく部屋を削除する
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.properties[id]; !ok {
		r.mu.Unlock()
		return property.ErrPropertyNotFound
	}
	delete(r.properties, id)
	r.mu.Unlock()

	if r.rooms != nil {
		r.rooms.deleteByPropertyID(id)
	}
	return nil
}

var _ property.Repository = (*PropertyRepository)(nil)
