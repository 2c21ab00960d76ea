package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/transaction"
)

// BookingRepository は予約リポジトリのインメモリ実装
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*booking.Booking

	// 家主IDの解決に使う（room_id → property_id → owner_id）
	rooms      *RoomRepository
	properties *PropertyRepository
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(rooms *RoomRepository, properties *PropertyRepository) *BookingRepository {
	return &BookingRepository{
		bookings:   make(map[string]*booking.Booking),
		rooms:      rooms,
		properties: properties,
	}
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	c := *b
	return &c
}

// Create は新しい予約を作成する
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

// GetByID はIDから予約を取得する
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// GetByRoomID は部屋に紐づく予約一覧を取得する
func (r *BookingRepository) GetByRoomID(ctx context.Context, roomID string) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID {
			result = append(result, cloneBooking(b))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

// GetByStudentID は学生の予約一覧を取得する
func (r *BookingRepository) GetByStudentID(ctx context.Context, studentID string) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.StudentID == studentID {
			result = append(result, cloneBooking(b))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

// GetByOwnerID は家主が所有する物件の部屋に対する予約一覧を取得する
func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*booking.Booking, error) {
	ownedRooms := make(map[string]bool)
	properties, err := r.properties.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		rooms, err := r.rooms.GetByPropertyID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, rm := range rooms {
			ownedRooms[rm.ID] = true
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if ownedRooms[b.RoomID] {
			result = append(result, cloneBooking(b))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

// GetRequestedStartingBefore は期間開始日が cutoff より前の承認待ち予約を取得する
func (r *BookingRepository) GetRequestedStartingBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.Status == booking.StatusRequested && b.Period.Start.Before(cutoff) {
			result = append(result, cloneBooking(b))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

// Update は予約の状態を更新する
func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return booking.ErrBookingNotFound
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func sortByCreatedAt(bookings []*booking.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}

var _ booking.Repository = (*BookingRepository)(nil)
