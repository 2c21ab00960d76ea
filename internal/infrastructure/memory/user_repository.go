package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// UserRepository はユーザーリポジトリのインメモリ実装
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserRepository はUserRepositoryを作成する
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*user.User)}
}

func cloneUser(u *user.User) *user.User {
	c := *u
	return &c
}

// Create は新しいユーザーを作成する
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailAlreadyInUse
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

// GetByID はIDからユーザーを取得する
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// GetByEmail はメールアドレスからユーザーを取得する
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// List はユーザー一覧を取得する
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*user.User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Update はユーザーを更新する
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
