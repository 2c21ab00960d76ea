package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
)

type ReviewHandler struct {
	service ReviewServiceInterface
}

func NewReviewHandler(s ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: s}
}

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5" example:"4"`
	Comment   string `json:"comment" example:"駅から近くて通学に便利でした"`
}

type ReviewResponse struct {
	ID         string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BookingID  string    `json:"booking_id" example:"booking-123"`
	StudentID  string    `json:"student_id" example:"student-456"`
	PropertyID string    `json:"property_id" example:"prop-789"`
	Rating     int       `json:"rating" example:"4"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID: r.ID, BookingID: r.BookingID, StudentID: r.StudentID,
		PropertyID: r.PropertyID, Rating: r.Rating, Comment: r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type RatingResponse struct {
	PropertyID    string  `json:"property_id" example:"prop-789"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
	ReviewCount   int     `json:"review_count" example:"12"`
}

// Create godoc
// @Summary レビューを投稿
// @Description 承認済みかつ滞在が終了した自分の予約に対してレビューを投稿します
// @Tags reviews
// @Accept json
// @Produce json
// @Param X-User-ID header string true "学生のユーザーID"
// @Param request body CreateReviewRequest true "レビュー内容"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string "自分の予約ではない"
// @Failure 422 {object} map[string]string "レビュー対象外の予約"
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	studentID := c.Request().Header.Get("X-User-ID")
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.LeaveReview(c.Request().Context(), application.LeaveReviewInput{
		StudentID: studentID, BookingID: req.BookingID,
		Rating: req.Rating, Comment: req.Comment,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(r))
}

// GetPropertyReviews godoc
// @Summary 物件のレビュー一覧を取得
// @Tags reviews
// @Produce json
// @Param property_id path string true "物件ID"
// @Success 200 {array} ReviewResponse
// @Router /properties/{property_id}/reviews [get]
func (h *ReviewHandler) GetPropertyReviews(c echo.Context) error {
	reviews, err := h.service.GetPropertyReviews(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = toReviewResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPropertyRating godoc
// @Summary 物件の評価サマリーを取得
// @Tags reviews
// @Produce json
// @Param property_id path string true "物件ID"
// @Success 200 {object} RatingResponse
// @Failure 404 {object} map[string]string
// @Router /properties/{property_id}/rating [get]
func (h *ReviewHandler) GetPropertyRating(c echo.Context) error {
	propertyID := c.Param("property_id")
	avg, count, err := h.service.GetPropertyRating(c.Request().Context(), propertyID)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, RatingResponse{
		PropertyID: propertyID, AverageRating: avg, ReviewCount: count,
	})
}
