package booking

import (
	"strings"
	"time"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
)

// Status は予約の状態を表す
type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Booking は学生による部屋の予約を表す
// ID・StudentID・RoomID・Period・CreatedAt は作成後に変更されない
// 状態は Accept / Reject / Cancel の遷移メソッドを通じてのみ変化する
type Booking struct {
	ID        string
	StudentID string
	RoomID    string
	Period    daterange.DateRange
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking は REQUESTED 状態の新しい予約を作成する
// ID は呼び出し側（アロケータ）が割り当てる
func NewBooking(id, studentID, roomID string, period daterange.DateRange, now time.Time) *Booking {
	return &Booking{
		ID:        id,
		StudentID: studentID,
		RoomID:    roomID,
		Period:    period,
		Status:    StatusRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsRequested は予約が承認待ちかを返す
func (b *Booking) IsRequested() bool {
	return b.Status == StatusRequested
}

// IsAccepted は予約が承認済みかを返す
func (b *Booking) IsAccepted() bool {
	return b.Status == StatusAccepted
}

// Accept は予約を承認する
// REQUESTED 以外の状態からは遷移できない
func (b *Booking) Accept(now time.Time) error {
	if b.Status != StatusRequested {
		return ErrBookingNotRequested
	}
	b.Status = StatusAccepted
	b.UpdatedAt = now
	return nil
}

// Reject は予約を拒否する
// REQUESTED 以外の状態からは遷移できない
func (b *Booking) Reject(now time.Time) error {
	if b.Status != StatusRequested {
		return ErrBookingNotRequested
	}
	b.Status = StatusRejected
	b.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする
// 既にキャンセル済みの場合は何もしない（冪等）
// 承認済みの予約もキャンセルできる
func (b *Booking) Cancel(now time.Time) {
	if b.Status == StatusCancelled {
		return
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
}

// HasEnded は予約期間が終了しているかを返す
// 半開区間 [start, end) のため、today が end に達した時点で終了とみなす
func (b *Booking) HasEnded(today time.Time) bool {
	return !b.Period.End.After(today)
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.StudentID) == "" {
		return ErrStudentIDRequired
	}
	if strings.TrimSpace(b.RoomID) == "" {
		return ErrRoomIDRequired
	}
	if b.Period.IsZero() {
		return ErrPeriodRequired
	}
	return nil
}
