package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
)

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) RequestBooking(ctx context.Context, input application.RequestBookingInput) (*booking.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) AcceptBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error) {
	args := m.Called(ctx, homeownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) RejectBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error) {
	args := m.Called(ctx, homeownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, studentID, bookingID string) (*booking.Booking, error) {
	args := m.Called(ctx, studentID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) IsRoomFree(ctx context.Context, roomID string, period daterange.DateRange) (bool, error) {
	args := m.Called(ctx, roomID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) GetStudentBookings(ctx context.Context, studentID string) ([]*booking.Booking, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingService) GetHomeownerBookings(ctx context.Context, homeownerID string) ([]*booking.Booking, error) {
	args := m.Called(ctx, homeownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func testBooking(status booking.Status) *booking.Booking {
	now := time.Now()
	return &booking.Booking{
		ID:        "booking-123",
		StudentID: "student-123",
		RoomID:    "room-123",
		Period: daterange.MustNew(
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBookingHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に予約リクエストを作成できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("RequestBooking", mock.Anything, mock.AnythingOfType("application.RequestBookingInput")).
			Return(testBooking(booking.StatusRequested), nil)

		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024-04-01", "end": "2024-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp BookingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "booking-123", resp.ID)
		assert.Equal(t, "requested", resp.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("ユーザーIDヘッダーがない場合は401", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024-04-01", "end": "2024-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("日付形式が不正な場合は400", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024/04/01", "end": "2024-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("開始日が終了日以降の場合は400", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024-09-01", "end": "2024-04-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("期間が重複している場合は409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("RequestBooking", mock.Anything, mock.AnythingOfType("application.RequestBookingInput")).
			Return(nil, booking.ErrRoomNotAvailable)

		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024-04-01", "end": "2024-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("貸出可能期間外の場合は400", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("RequestBooking", mock.Anything, mock.AnythingOfType("application.RequestBookingInput")).
			Return(nil, booking.ErrOutsideAvailability)

		handler := NewBookingHandler(mockService)

		reqBody := `{"room_id": "room-123", "start": "2024-04-01", "end": "2024-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestBookingHandler_Accept(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に予約を承認できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("AcceptBooking", mock.Anything, "owner-123", "booking-123").
			Return(testBooking(booking.StatusAccepted), nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/accept", nil)
		req.Header.Set("X-User-ID", "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Accept(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp BookingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "accepted", resp.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("他人の物件の予約は403", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("AcceptBooking", mock.Anything, "other-owner", "booking-123").
			Return(nil, booking.ErrNotBookingOwner)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/accept", nil)
		req.Header.Set("X-User-ID", "other-owner")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("承認時に重複が見つかった場合は409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("AcceptBooking", mock.Anything, "owner-123", "booking-123").
			Return(nil, booking.ErrRoomNotAvailable)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/accept", nil)
		req.Header.Set("X-User-ID", "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("REQUESTED状態ではない予約は422", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("AcceptBooking", mock.Anything, "owner-123", "booking-123").
			Return(nil, booking.ErrBookingNotRequested)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/accept", nil)
		req.Header.Set("X-User-ID", "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	})

	t.Run("存在しない予約は404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("AcceptBooking", mock.Anything, "owner-123", "missing").
			Return(nil, booking.ErrBookingNotFound)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/missing/accept", nil)
		req.Header.Set("X-User-ID", "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestBookingHandler_Cancel(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に予約をキャンセルできる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelBooking", mock.Anything, "student-123", "booking-123").
			Return(testBooking(booking.StatusCancelled), nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/cancel", nil)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Cancel(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp BookingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("他人の予約のキャンセルは403", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelBooking", mock.Anything, "other-student", "booking-123").
			Return(nil, booking.ErrNotBookingOwner)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-123/cancel", nil)
		req.Header.Set("X-User-ID", "other-student")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("booking-123")

		err := handler.Cancel(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}

func TestBookingHandler_CheckAvailability(t *testing.T) {
	e := NewTestEcho()

	t.Run("空いている場合はtrueを返す", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("IsRoomFree", mock.Anything, "room-123", mock.AnythingOfType("daterange.DateRange")).
			Return(true, nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/rooms/room-123/availability?start=2024-04-01&end=2024-09-01", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("room-123")

		err := handler.CheckAvailability(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"available":true`)
	})

	t.Run("期間指定がない場合は400", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/rooms/room-123/availability", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("room-123")

		err := handler.CheckAvailability(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestBookingHandler_GetStudentBookings(t *testing.T) {
	e := NewTestEcho()

	t.Run("学生の予約一覧を取得できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("GetStudentBookings", mock.Anything, "student-123").
			Return([]*booking.Booking{testBooking(booking.StatusRequested), testBooking(booking.StatusAccepted)}, nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.GetStudentBookings(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []BookingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}
