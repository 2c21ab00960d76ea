package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	RoomID string `json:"room_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Start  string `json:"start" validate:"required" example:"2024-04-01"`
	End    string `json:"end" validate:"required" example:"2024-09-01"`
}

type BookingResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StudentID string    `json:"student_id" example:"student-123"`
	RoomID    string    `json:"room_id" example:"room-456"`
	Start     string    `json:"start" example:"2024-04-01"`
	End       string    `json:"end" example:"2024-09-01"`
	Status    string    `json:"status" example:"requested"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, StudentID: b.StudentID, RoomID: b.RoomID,
		Start:  b.Period.Start.Format(dateLayout),
		End:    b.Period.End.Format(dateLayout),
		Status: string(b.Status),
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

// Create godoc
// @Summary 予約リクエストを作成
// @Description 部屋に対する入居予約をリクエストします。家主の承認までREQUESTED状態です
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "学生のユーザーID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "期間が承認済み予約と重複"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	studentID := c.Request().Header.Get("X-User-ID")
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	period, err := parsePeriod(req.Start, req.End)
	if err != nil {
		return err
	}
	b, err := h.service.RequestBooking(c.Request().Context(), application.RequestBookingInput{
		StudentID: studentID, RoomID: req.RoomID, Period: period,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetStudentBookings godoc
// @Summary 学生自身の予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "学生のユーザーID"
// @Success 200 {array} BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) GetStudentBookings(c echo.Context) error {
	studentID := c.Request().Header.Get("X-User-ID")
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	bookings, err := h.service.GetStudentBookings(c.Request().Context(), studentID)
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHomeownerBookings godoc
// @Summary 家主の物件に対する予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Success 200 {array} BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/received [get]
func (h *BookingHandler) GetHomeownerBookings(c echo.Context) error {
	homeownerID := c.Request().Header.Get("X-User-ID")
	if homeownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	bookings, err := h.service.GetHomeownerBookings(c.Request().Context(), homeownerID)
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// Accept godoc
// @Summary 予約リクエストを承認
// @Description 承認時に期間の重複を再チェックします。重複が見つかった場合、
// @Description リクエストは却下され409を返します
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string "自分の物件の予約ではない"
// @Failure 409 {object} map[string]string "期間が承認済み予約と重複"
// @Failure 422 {object} map[string]string "REQUESTED状態ではない"
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c echo.Context) error {
	homeownerID := c.Request().Header.Get("X-User-ID")
	if homeownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	b, err := h.service.AcceptBooking(c.Request().Context(), homeownerID, c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Reject godoc
// @Summary 予約リクエストを却下
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string "REQUESTED状態ではない"
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c echo.Context) error {
	homeownerID := c.Request().Header.Get("X-User-ID")
	if homeownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	b, err := h.service.RejectBooking(c.Request().Context(), homeownerID, c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 学生本人による取り消し。キャンセル済みの場合は何もせず200を返します
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "学生のユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string "自分の予約ではない"
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	studentID := c.Request().Header.Get("X-User-ID")
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	b, err := h.service.CancelBooking(c.Request().Context(), studentID, c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// CheckAvailability godoc
// @Summary 部屋の空き状況を確認
// @Description 指定期間が承認済み予約と重複しないかを返します。
// @Description 結果は問い合わせ時点のスナップショットです
// @Tags bookings
// @Produce json
// @Param id path string true "部屋ID"
// @Param start query string true "入居開始日（YYYY-MM-DD）"
// @Param end query string true "退去日（YYYY-MM-DD）"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	period, err := parsePeriod(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return err
	}
	free, err := h.service.IsRoomFree(c.Request().Context(), c.Param("id"), period)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"available": free})
}
