package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestBooking(t *testing.T) *Booking {
	t.Helper()
	period := daterange.MustNew(date(2024, 1, 10), date(2024, 2, 10))
	b := NewBooking("booking-1", "student-1", "room-1", period, date(2024, 1, 1))
	require.NoError(t, b.Validate())
	return b
}

func TestNewBooking(t *testing.T) {
	b := createTestBooking(t)
	assert.Equal(t, StatusRequested, b.Status)
	assert.True(t, b.IsRequested())
	assert.False(t, b.IsAccepted())
	assert.Equal(t, "student-1", b.StudentID)
	assert.Equal(t, "room-1", b.RoomID)
}

func TestBooking_Validate(t *testing.T) {
	period := daterange.MustNew(date(2024, 1, 10), date(2024, 2, 10))
	now := date(2024, 1, 1)

	tests := []struct {
		name        string
		studentID   string
		roomID      string
		period      daterange.DateRange
		errExpected error
	}{
		{"正常な予約", "student-1", "room-1", period, nil},
		{"学生ID未指定", "", "room-1", period, ErrStudentIDRequired},
		{"部屋ID未指定", "student-1", " ", period, ErrRoomIDRequired},
		{"期間未指定", "student-1", "room-1", daterange.DateRange{}, ErrPeriodRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBooking("booking-1", tt.studentID, tt.roomID, tt.period, now)
			err := b.Validate()
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBooking_Accept(t *testing.T) {
	b := createTestBooking(t)
	now := date(2024, 1, 2)

	require.NoError(t, b.Accept(now))
	assert.Equal(t, StatusAccepted, b.Status)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestBooking_Accept_NotRequested(t *testing.T) {
	tests := []struct {
		name   string
		status Status
	}{
		{"承認済みからは承認できない", StatusAccepted},
		{"拒否済みからは承認できない", StatusRejected},
		{"キャンセル済みからは承認できない", StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createTestBooking(t)
			b.Status = tt.status
			assert.ErrorIs(t, b.Accept(date(2024, 1, 2)), ErrBookingNotRequested)
		})
	}
}

func TestBooking_Reject(t *testing.T) {
	b := createTestBooking(t)
	require.NoError(t, b.Reject(date(2024, 1, 2)))
	assert.Equal(t, StatusRejected, b.Status)
}

func TestBooking_Reject_NotRequested(t *testing.T) {
	b := createTestBooking(t)
	b.Status = StatusAccepted
	assert.ErrorIs(t, b.Reject(date(2024, 1, 2)), ErrBookingNotRequested)
}

func TestBooking_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		status Status
	}{
		{"承認待ちからキャンセル", StatusRequested},
		{"承認済みからキャンセル", StatusAccepted},
		{"拒否済みからキャンセル", StatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createTestBooking(t)
			b.Status = tt.status
			b.Cancel(date(2024, 1, 2))
			assert.Equal(t, StatusCancelled, b.Status)
		})
	}
}

func TestBooking_Cancel_Idempotent(t *testing.T) {
	b := createTestBooking(t)
	first := date(2024, 1, 2)
	b.Cancel(first)
	assert.Equal(t, StatusCancelled, b.Status)

	// 2回目のキャンセルは何もしない（UpdatedAt も変わらない）
	b.Cancel(date(2024, 1, 3))
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, first, b.UpdatedAt)
}

func TestBooking_HasEnded(t *testing.T) {
	b := createTestBooking(t) // 期間は [2024-01-10, 2024-02-10)

	tests := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"期間中は終了していない", date(2024, 2, 1), false},
		{"開始前は終了していない", date(2024, 1, 1), false},
		{"終了日当日は終了している（半開区間）", date(2024, 2, 10), true},
		{"終了日以降は終了している", date(2024, 3, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.HasEnded(tt.today))
		})
	}
}
