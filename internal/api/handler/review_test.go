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
	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
)

// MockReviewService はReviewServiceInterfaceのモック
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) LeaveReview(ctx context.Context, input application.LeaveReviewInput) (*review.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) GetPropertyReviews(ctx context.Context, propertyID string) ([]*review.Review, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

func (m *MockReviewService) GetPropertyRating(ctx context.Context, propertyID string) (float64, int, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func TestReviewHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にレビューを投稿できる", func(t *testing.T) {
		mockService := new(MockReviewService)
		mockService.On("LeaveReview", mock.Anything, mock.AnythingOfType("application.LeaveReviewInput")).
			Return(&review.Review{
				ID: "review-123", BookingID: "booking-123",
				StudentID: "student-123", PropertyID: "prop-123",
				Rating: 4, Comment: "通学に便利でした",
				CreatedAt: time.Now(),
			}, nil)

		handler := NewReviewHandler(mockService)

		reqBody := `{"booking_id": "booking-123", "rating": 4, "comment": "通学に便利でした"}`
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ReviewResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "review-123", resp.ID)
		assert.Equal(t, 4, resp.Rating)

		mockService.AssertExpectations(t)
	})

	t.Run("レビュー対象外の予約は422", func(t *testing.T) {
		mockService := new(MockReviewService)
		mockService.On("LeaveReview", mock.Anything, mock.AnythingOfType("application.LeaveReviewInput")).
			Return(nil, review.ErrNotReviewable)

		handler := NewReviewHandler(mockService)

		reqBody := `{"booking_id": "booking-123", "rating": 4}`
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "student-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	})

	t.Run("評価が範囲外の場合は400", func(t *testing.T) {
		mockService := new(MockReviewService)
		handler := NewReviewHandler(mockService)

		reqBody := `{"booking_id": "booking-123", "rating": 6}`
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(reqBody))
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

func TestReviewHandler_GetPropertyRating(t *testing.T) {
	e := NewTestEcho()

	t.Run("評価サマリーを取得できる", func(t *testing.T) {
		mockService := new(MockReviewService)
		mockService.On("GetPropertyRating", mock.Anything, "prop-123").Return(4.5, 12, nil)

		handler := NewReviewHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/properties/prop-123/rating", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("property_id")
		c.SetParamValues("prop-123")

		err := handler.GetPropertyRating(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp RatingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, 4.5, resp.AverageRating)
		assert.Equal(t, 12, resp.ReviewCount)
	})
}
