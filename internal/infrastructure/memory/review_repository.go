package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
)

// ReviewRepository はレビューリポジトリのインメモリ実装
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*review.Review
}

// NewReviewRepository はReviewRepositoryを作成する
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]*review.Review)}
}

func cloneReview(rv *review.Review) *review.Review {
	c := *rv
	return &c
}

// Create は新しいレビューを作成する
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[rv.ID] = cloneReview(rv)
	return nil
}

// GetByID はIDからレビューを取得する
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	return cloneReview(rv), nil
}

// GetByPropertyID は物件のレビュー一覧を取得する
func (r *ReviewRepository) GetByPropertyID(ctx context.Context, propertyID string) ([]*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*review.Review
	for _, rv := range r.reviews {
		if rv.PropertyID == propertyID {
			result = append(result, cloneReview(rv))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByBookingID は予約に対するレビューを取得する
func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return cloneReview(rv), nil
		}
	}
	return nil, review.ErrReviewNotFound
}

var _ review.Repository = (*ReviewRepository)(nil)
