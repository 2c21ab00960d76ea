package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/transaction"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
	redislock "github.com/rhyspreston2/go-student-rentals/internal/infrastructure/redis"
	"github.com/rhyspreston2/go-student-rentals/internal/pkg/metrics"
)

// BookingService は予約のライフサイクル
// （リクエスト → 承認 / 拒否 / キャンセル）を管理する
type BookingService struct {
	txManager    transaction.Manager
	bookingRepo  booking.Repository
	roomRepo     room.Repository
	propertyRepo property.Repository
	userRepo     user.Repository
	roomLocks    *redislock.LockManager
	metrics      *metrics.Metrics

	// 同一プロセス内での部屋単位の直列化
	// Redis ロックは複数インスタンス間の排他のための追加の保険で、
	// 単一プロセスではこちらが不変条件を守る
	localLocks *roomMutex

	// テストから差し替えられるように注入する
	now   func() time.Time
	newID func() string
}

func NewBookingService(
	txManager transaction.Manager,
	br booking.Repository,
	rr room.Repository,
	pr property.Repository,
	ur user.Repository,
	lm *redislock.LockManager,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		txManager:    txManager,
		bookingRepo:  br,
		roomRepo:     rr,
		propertyRepo: pr,
		userRepo:     ur,
		roomLocks:    lm,
		metrics:      m,
		localLocks:   newRoomMutex(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type RequestBookingInput struct {
	StudentID string
	RoomID    string
	Period    daterange.DateRange
}

// RequestBooking は学生による予約リクエストを受け付け、
// REQUESTED 状態の予約を作成する
func (s *BookingService) RequestBooking(ctx context.Context, input RequestBookingInput) (*booking.Booking, error) {
	student, err := s.userRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("学生の取得に失敗: %w", err)
	}
	if !student.IsStudent() {
		return nil, user.ErrNotStudent
	}
	if !student.IsActive() {
		return nil, user.ErrAccountDeactivated
	}

	rm, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, fmt.Errorf("部屋の取得に失敗: %w", err)
	}

	// 空き確認から登録までを部屋単位で直列化する
	unlock := s.localLocks.Lock(rm.ID)
	defer unlock()
	if s.roomLocks != nil {
		lock, err := s.roomLocks.AcquireRoomLock(ctx, rm.ID, 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				return nil, fmt.Errorf("部屋が他の処理で使用中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	// 貸出可能期間への包含はリクエスト時にのみ確認する
	if !rm.IsWithinAvailability(input.Period) {
		s.countBooking("out_of_window")
		return nil, booking.ErrOutsideAvailability
	}

	// 承認済み予約との重複確認
	existing, err := s.bookingRepo.GetByRoomID(ctx, rm.ID)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	if !booking.IsRoomFree(existing, input.Period) {
		s.countBooking("conflict")
		return nil, booking.ErrRoomNotAvailable
	}

	b := booking.NewBooking(s.newID(), input.StudentID, input.RoomID, input.Period, s.now())
	if err := b.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countBooking("requested")
	return b, nil
}

// AcceptBooking は家主が予約リクエストを承認する
// リクエストから承認までの間に部屋の状態が変わりうるため、
// 空き確認をここで必ずやり直す。重複が見つかった場合は予約を
// REJECTED に遷移させたうえで ErrRoomNotAvailable を返す
func (s *BookingService) AcceptBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, homeownerID)
	if err != nil {
		return nil, fmt.Errorf("家主の取得に失敗: %w", err)
	}
	if !owner.IsActive() {
		return nil, user.ErrAccountDeactivated
	}

	rm, err := s.roomRepo.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("部屋の取得に失敗: %w", err)
	}
	prop, err := s.propertyRepo.GetByID(ctx, rm.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("物件の取得に失敗: %w", err)
	}
	if prop.OwnerID != homeownerID {
		return nil, property.ErrNotPropertyOwner
	}

	if !b.IsRequested() {
		return nil, booking.ErrBookingNotRequested
	}

	unlock := s.localLocks.Lock(rm.ID)
	defer unlock()
	if s.roomLocks != nil {
		lock, err := s.roomLocks.AcquireRoomLock(ctx, rm.ID, 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				return nil, fmt.Errorf("部屋が他の処理で使用中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	// ロック獲得後に最新の状態を取り直す
	// （並行する承認がこの予約を REJECTED に変えている可能性がある）
	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsRequested() {
		return nil, booking.ErrBookingNotRequested
	}

	existing, err := s.bookingRepo.GetByRoomID(ctx, rm.ID)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	if !booking.IsRoomFree(existing, b.Period) {
		// 重複した予約を宙ぶらりんにせず、安全側に倒して拒否する
		if err := b.Reject(s.now()); err != nil {
			return nil, err
		}
		if err := s.updateBooking(ctx, b); err != nil {
			return nil, err
		}
		s.countBooking("conflict_rejected")
		return nil, booking.ErrRoomNotAvailable
	}

	if err := b.Accept(s.now()); err != nil {
		return nil, err
	}
	if err := s.updateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.countBooking("accepted")
	return b, nil
}

// RejectBooking は家主が予約リクエストを拒否する
func (s *BookingService) RejectBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	rm, err := s.roomRepo.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("部屋の取得に失敗: %w", err)
	}
	prop, err := s.propertyRepo.GetByID(ctx, rm.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("物件の取得に失敗: %w", err)
	}
	if prop.OwnerID != homeownerID {
		return nil, property.ErrNotPropertyOwner
	}

	unlock := s.localLocks.Lock(rm.ID)
	defer unlock()
	if s.roomLocks != nil {
		lock, err := s.roomLocks.AcquireRoomLock(ctx, rm.ID, 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				return nil, fmt.Errorf("部屋が他の処理で使用中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	// ロック獲得後に最新の状態を取り直す
	// （並行する承認が先に ACCEPTED を確定させているかもしれない）
	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.Reject(s.now()); err != nil {
		return nil, err
	}
	if err := s.updateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.countBooking("rejected")
	return b, nil
}

// CancelBooking は学生が自分の予約をキャンセルする
// 既にキャンセル済みの場合は成功扱いの no-op
// 承認済みの予約も無条件にキャンセルできる
func (s *BookingService) CancelBooking(ctx context.Context, studentID, bookingID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != studentID {
		return nil, booking.ErrNotBookingOwner
	}

	unlock := s.localLocks.Lock(b.RoomID)
	defer unlock()

	// ロック獲得後に最新の状態で判定し直す
	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == booking.StatusCancelled {
		return b, nil
	}

	b.Cancel(s.now())
	if err := s.updateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.countBooking("cancelled")
	return b, nil
}

// IsRoomFree は指定期間に部屋が空いているかを返す
// 結果はその時点のスナップショットで、キャッシュしてはならない
func (s *BookingService) IsRoomFree(ctx context.Context, roomID string, period daterange.DateRange) (bool, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return false, fmt.Errorf("部屋の取得に失敗: %w", err)
	}
	existing, err := s.bookingRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	return booking.IsRoomFree(existing, period), nil
}

// HasBookingEnded は予約期間が終了しているかを返す（レビュー可否の判定に使う）
func (s *BookingService) HasBookingEnded(ctx context.Context, bookingID string) (bool, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return false, err
	}
	return b.HasEnded(s.now()), nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// GetStudentBookings は学生の予約一覧を取得する
func (s *BookingService) GetStudentBookings(ctx context.Context, studentID string) ([]*booking.Booking, error) {
	return s.bookingRepo.GetByStudentID(ctx, studentID)
}

// GetHomeownerBookings は家主が所有する物件への予約一覧を取得する
func (s *BookingService) GetHomeownerBookings(ctx context.Context, homeownerID string) ([]*booking.Booking, error) {
	return s.bookingRepo.GetByOwnerID(ctx, homeownerID)
}

// RejectStaleRequests は開始日を過ぎても承認されなかった予約リクエストを
// まとめて拒否する。バックグラウンドワーカーから定期的に呼ばれる
func (s *BookingService) RejectStaleRequests(ctx context.Context) (int, error) {
	stale, err := s.bookingRepo.GetRequestedStartingBefore(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("承認待ち予約の取得に失敗: %w", err)
	}

	count := 0
	for _, b := range stale {
		unlock := s.localLocks.Lock(b.RoomID)
		err := func() error {
			defer unlock()
			// 取得からロックまでの間に状態が変わっている可能性がある
			cur, err := s.bookingRepo.GetByID(ctx, b.ID)
			if err != nil {
				return err
			}
			if !cur.IsRequested() {
				return nil
			}
			if err := cur.Reject(s.now()); err != nil {
				return err
			}
			if err := s.updateBooking(ctx, cur); err != nil {
				return err
			}
			count++
			return nil
		}()
		if err != nil {
			return count, err
		}
	}
	return count, nil
}

func (s *BookingService) updateBooking(ctx context.Context, b *booking.Booking) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (s *BookingService) countBooking(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}
