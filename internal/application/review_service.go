package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
	redisinfra "github.com/rhyspreston2/go-student-rentals/internal/infrastructure/redis"
)

// ReviewService は滞在終了後のレビュー投稿と評価集計を管理する
type ReviewService struct {
	reviewRepo   review.Repository
	bookingRepo  booking.Repository
	roomRepo     room.Repository
	propertyRepo property.Repository
	ratingCache  *redisinfra.RatingCache

	now   func() time.Time
	newID func() string
}

func NewReviewService(
	revr review.Repository,
	br booking.Repository,
	rr room.Repository,
	pr property.Repository,
	cache *redisinfra.RatingCache,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   revr,
		bookingRepo:  br,
		roomRepo:     rr,
		propertyRepo: pr,
		ratingCache:  cache,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type LeaveReviewInput struct {
	StudentID string
	BookingID string
	Rating    int
	Comment   string
}

// LeaveReview は学生が自分の予約に対してレビューを投稿する
// 対象は承認済みかつ滞在が終了した予約に限る
func (s *ReviewService) LeaveReview(ctx context.Context, input LeaveReviewInput) (*review.Review, error) {
	b, err := s.bookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != input.StudentID {
		return nil, review.ErrNotBookingStudent
	}
	if !b.IsAccepted() {
		return nil, review.ErrNotReviewable
	}
	if !b.HasEnded(s.now()) {
		return nil, review.ErrNotReviewable
	}

	rm, err := s.roomRepo.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("部屋の取得に失敗: %w", err)
	}
	p, err := s.propertyRepo.GetByID(ctx, rm.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("物件の取得に失敗: %w", err)
	}

	rev := review.NewReview(s.newID(), b.ID, input.StudentID, p.ID, input.Rating, input.Comment, s.now())
	if err := rev.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, rev); err != nil {
		return nil, err
	}

	// 物件側の評価集計を更新する
	if err := p.ApplyReview(rev.Rating, s.now()); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	// キャッシュされた平均評価は古くなるので破棄する
	if s.ratingCache != nil {
		_ = s.ratingCache.Invalidate(ctx, p.ID)
	}

	return rev, nil
}

// GetPropertyReviews は物件のレビュー一覧を取得する
func (s *ReviewService) GetPropertyReviews(ctx context.Context, propertyID string) ([]*review.Review, error) {
	return s.reviewRepo.GetByPropertyID(ctx, propertyID)
}

// GetPropertyRating は物件の平均評価を取得する
// キャッシュがあればそれを返し、なければ物件から計算してキャッシュする
func (s *ReviewService) GetPropertyRating(ctx context.Context, propertyID string) (float64, int, error) {
	if s.ratingCache != nil {
		if avg, count, err := s.ratingCache.Get(ctx, propertyID); err == nil {
			return avg, count, nil
		} else if !errors.Is(err, redisinfra.ErrCacheMiss) {
			return 0, 0, err
		}
	}

	p, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return 0, 0, err
	}

	avg := p.Rating.Average()
	count := p.Rating.ReviewCount
	if s.ratingCache != nil {
		_ = s.ratingCache.Set(ctx, propertyID, avg, count, 10*time.Minute)
	}
	return avg, count, nil
}
