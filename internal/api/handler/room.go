package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
)

// 日付はすべて YYYY-MM-DD 形式で受け渡しする
const dateLayout = "2006-01-02"

// parsePeriod は開始日・終了日の文字列を半開区間 [start, end) に変換する
func parsePeriod(start, end string) (daterange.DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return daterange.DateRange{}, echo.NewHTTPError(http.StatusBadRequest, "開始日はYYYY-MM-DD形式で指定してください")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return daterange.DateRange{}, echo.NewHTTPError(http.StatusBadRequest, "終了日はYYYY-MM-DD形式で指定してください")
	}
	period, err := daterange.New(s, e)
	if err != nil {
		return daterange.DateRange{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return period, nil
}

type RoomHandler struct {
	service ListingServiceInterface
}

func NewRoomHandler(s ListingServiceInterface) *RoomHandler {
	return &RoomHandler{service: s}
}

type CreatePropertyRequest struct {
	Address     string `json:"address" validate:"required" example:"杉並区高円寺南1-2-3"`
	CityOrArea  string `json:"city_or_area" validate:"required" example:"東京"`
	Description string `json:"description" example:"駅徒歩5分の学生向け物件"`
}

type PropertyResponse struct {
	ID            string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID       string    `json:"owner_id" example:"owner-123"`
	Address       string    `json:"address" example:"杉並区高円寺南1-2-3"`
	CityOrArea    string    `json:"city_or_area" example:"東京"`
	Description   string    `json:"description,omitempty"`
	AverageRating float64   `json:"average_rating" example:"4.5"`
	ReviewCount   int       `json:"review_count" example:"12"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID: p.ID, OwnerID: p.OwnerID,
		Address: p.Address, CityOrArea: p.CityOrArea, Description: p.Description,
		AverageRating: p.Rating.Average(), ReviewCount: p.Rating.ReviewCount,
		CreatedAt: p.CreatedAt,
	}
}

type CreateRoomRequest struct {
	Type              string   `json:"type" validate:"required" example:"single"`
	MonthlyRent       int      `json:"monthly_rent" validate:"gte=0" example:"55000"`
	Description       string   `json:"description" example:"南向きの個室"`
	Amenities         []string `json:"amenities" example:"wifi,desk"`
	AvailabilityStart string   `json:"availability_start" validate:"required" example:"2024-04-01"`
	AvailabilityEnd   string   `json:"availability_end" validate:"required" example:"2025-04-01"`
}

type UpdateRoomRequest struct {
	MonthlyRent       *int     `json:"monthly_rent,omitempty" example:"58000"`
	Description       *string  `json:"description,omitempty"`
	Amenities         []string `json:"amenities,omitempty"`
	AvailabilityStart *string  `json:"availability_start,omitempty" example:"2024-04-01"`
	AvailabilityEnd   *string  `json:"availability_end,omitempty" example:"2025-04-01"`
}

type RoomResponse struct {
	ID                string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PropertyID        string    `json:"property_id" example:"prop-123"`
	Type              string    `json:"type" example:"single"`
	MonthlyRent       int       `json:"monthly_rent" example:"55000"`
	Description       string    `json:"description,omitempty"`
	Amenities         []string  `json:"amenities" example:"wifi,desk"`
	AvailabilityStart string    `json:"availability_start" example:"2024-04-01"`
	AvailabilityEnd   string    `json:"availability_end" example:"2025-04-01"`
	CreatedAt         time.Time `json:"created_at"`
}

func toRoomResponse(r *room.Room) RoomResponse {
	amenities := make([]string, len(r.Amenities))
	for i, a := range r.Amenities {
		amenities[i] = string(a)
	}
	return RoomResponse{
		ID: r.ID, PropertyID: r.PropertyID,
		Type: string(r.Type), MonthlyRent: r.MonthlyRent, Description: r.Description,
		Amenities:         amenities,
		AvailabilityStart: r.Availability.Start.Format(dateLayout),
		AvailabilityEnd:   r.Availability.End.Format(dateLayout),
		CreatedAt:         r.CreatedAt,
	}
}

func toAmenities(names []string) []room.Amenity {
	amenities := make([]room.Amenity, len(names))
	for i, n := range names {
		amenities[i] = room.Amenity(n)
	}
	return amenities
}

// CreateProperty godoc
// @Summary 物件を掲載
// @Tags properties
// @Accept json
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Param request body CreatePropertyRequest true "物件情報"
// @Success 201 {object} PropertyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /properties [post]
func (h *RoomHandler) CreateProperty(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.service.AddProperty(c.Request().Context(), application.AddPropertyInput{
		OwnerID: ownerID, Address: req.Address,
		CityOrArea: req.CityOrArea, Description: req.Description,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

// GetProperty godoc
// @Summary 物件を取得
// @Tags properties
// @Produce json
// @Param id path string true "物件ID"
// @Success 200 {object} PropertyResponse
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (h *RoomHandler) GetProperty(c echo.Context) error {
	p, err := h.service.GetProperty(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// GetOwnerProperties godoc
// @Summary 自分の物件一覧を取得
// @Tags properties
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Success 200 {array} PropertyResponse
// @Failure 401 {object} map[string]string
// @Router /properties [get]
func (h *RoomHandler) GetOwnerProperties(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	properties, err := h.service.GetOwnerProperties(c.Request().Context(), ownerID)
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		resp[i] = toPropertyResponse(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteProperty godoc
// @Summary 物件の掲載を取り下げ
// @Tags properties
// @Param X-User-ID header string true "家主のユーザーID"
// @Param id path string true "物件ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [delete]
func (h *RoomHandler) DeleteProperty(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	if err := h.service.RemoveProperty(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateRoom godoc
// @Summary 物件に部屋を追加
// @Tags rooms
// @Accept json
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Param property_id path string true "物件ID"
// @Param request body CreateRoomRequest true "部屋情報"
// @Success 201 {object} RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /properties/{property_id}/rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	availability, err := parsePeriod(req.AvailabilityStart, req.AvailabilityEnd)
	if err != nil {
		return err
	}
	r, err := h.service.AddRoom(c.Request().Context(), application.AddRoomInput{
		OwnerID:      ownerID,
		PropertyID:   c.Param("property_id"),
		Type:         room.Type(req.Type),
		MonthlyRent:  req.MonthlyRent,
		Description:  req.Description,
		Amenities:    toAmenities(req.Amenities),
		Availability: availability,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toRoomResponse(r))
}

// GetRoom godoc
// @Summary 部屋を取得
// @Tags rooms
// @Produce json
// @Param id path string true "部屋ID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	r, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRoomResponse(r))
}

// GetPropertyRooms godoc
// @Summary 物件の部屋一覧を取得
// @Tags rooms
// @Produce json
// @Param property_id path string true "物件ID"
// @Success 200 {array} RoomResponse
// @Router /properties/{property_id}/rooms [get]
func (h *RoomHandler) GetPropertyRooms(c echo.Context) error {
	rooms, err := h.service.GetPropertyRooms(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toRoomResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateRoom godoc
// @Summary 部屋の掲載内容を更新
// @Description 指定されたフィールドのみ更新します
// @Tags rooms
// @Accept json
// @Produce json
// @Param X-User-ID header string true "家主のユーザーID"
// @Param id path string true "部屋ID"
// @Param request body UpdateRoomRequest true "更新内容"
// @Success 200 {object} RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /rooms/{id} [patch]
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	input := application.UpdateRoomInput{
		OwnerID:     ownerID,
		RoomID:      c.Param("id"),
		MonthlyRent: req.MonthlyRent,
		Description: req.Description,
	}
	if req.Amenities != nil {
		input.Amenities = toAmenities(req.Amenities)
	}
	if req.AvailabilityStart != nil || req.AvailabilityEnd != nil {
		if req.AvailabilityStart == nil || req.AvailabilityEnd == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "貸出可能期間は開始日と終了日を両方指定してください")
		}
		availability, err := parsePeriod(*req.AvailabilityStart, *req.AvailabilityEnd)
		if err != nil {
			return err
		}
		input.Availability = &availability
	}
	r, err := h.service.UpdateRoom(c.Request().Context(), input)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRoomResponse(r))
}

// DeleteRoom godoc
// @Summary 部屋の掲載を取り下げ
// @Tags rooms
// @Param X-User-ID header string true "家主のユーザーID"
// @Param id path string true "部屋ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	if err := h.service.RemoveRoom(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Search godoc
// @Summary 部屋を検索
// @Description 都市・部屋タイプ・家賃・期間で検索します。期間は貸出可能期間に
// @Description 完全に含まれる部屋のみ返します
// @Tags rooms
// @Produce json
// @Param city query string false "都市・エリア名"
// @Param type query string false "部屋タイプ"
// @Param min_rent query int false "家賃下限"
// @Param max_rent query int false "家賃上限"
// @Param start query string false "入居開始日（YYYY-MM-DD）"
// @Param end query string false "退去日（YYYY-MM-DD）"
// @Success 200 {array} RoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/search [get]
func (h *RoomHandler) Search(c echo.Context) error {
	criteria := room.SearchCriteria{
		CityOrArea: c.QueryParam("city"),
		RoomType:   room.Type(c.QueryParam("type")),
	}
	if v := c.QueryParam("min_rent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "家賃下限は整数で指定してください")
		}
		criteria.MinRent = &n
	}
	if v := c.QueryParam("max_rent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "家賃上限は整数で指定してください")
		}
		criteria.MaxRent = &n
	}
	start, end := c.QueryParam("start"), c.QueryParam("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "期間検索には開始日と終了日を両方指定してください")
		}
		period, err := parsePeriod(start, end)
		if err != nil {
			return err
		}
		criteria.RequiredPeriod = period
	}
	rooms, err := h.service.SearchRooms(c.Request().Context(), criteria)
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toRoomResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}
