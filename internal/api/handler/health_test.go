package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
)

func TestHealthHandler_Check(t *testing.T) {
	// Setup
	e := NewTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler()

	// Act
	err := h.Check(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"service":"student-rentals-api"`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
}

func TestNewHealthHandler(t *testing.T) {
	h := NewHealthHandler()
	assert.NotNil(t, h)
}

func TestToBookingResponse(t *testing.T) {
	now := time.Now()
	period := daterange.MustNew(
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	)
	b := &booking.Booking{
		ID:        "booking-123",
		StudentID: "student-456",
		RoomID:    "room-789",
		Period:    period,
		Status:    booking.StatusRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := toBookingResponse(b)

	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, b.StudentID, resp.StudentID)
	assert.Equal(t, b.RoomID, resp.RoomID)
	assert.Equal(t, "2024-04-01", resp.Start)
	assert.Equal(t, "2024-09-01", resp.End)
	assert.Equal(t, "requested", resp.Status)
	assert.Equal(t, b.CreatedAt, resp.CreatedAt)
}

func TestToRoomResponse(t *testing.T) {
	now := time.Now()
	availability := daterange.MustNew(
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	)
	r := &room.Room{
		ID:           "room-123",
		PropertyID:   "prop-456",
		Type:         room.TypeSingle,
		MonthlyRent:  55000,
		Description:  "南向きの個室",
		Amenities:    []room.Amenity{room.AmenityWifi, room.AmenityDesk},
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	resp := toRoomResponse(r)

	assert.Equal(t, r.ID, resp.ID)
	assert.Equal(t, r.PropertyID, resp.PropertyID)
	assert.Equal(t, "single", resp.Type)
	assert.Equal(t, r.MonthlyRent, resp.MonthlyRent)
	assert.Equal(t, []string{"wifi", "desk"}, resp.Amenities)
	assert.Equal(t, "2024-04-01", resp.AvailabilityStart)
	assert.Equal(t, "2025-04-01", resp.AvailabilityEnd)
}

func TestToPropertyResponse(t *testing.T) {
	now := time.Now()
	p := &property.Property{
		ID:          "prop-123",
		OwnerID:     "owner-456",
		Address:     "杉並区高円寺南1-2-3",
		CityOrArea:  "東京",
		Description: "駅徒歩5分",
		Rating:      property.RatingSummary{TotalStars: 9, ReviewCount: 2},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	resp := toPropertyResponse(p)

	assert.Equal(t, p.ID, resp.ID)
	assert.Equal(t, p.OwnerID, resp.OwnerID)
	assert.Equal(t, p.Address, resp.Address)
	assert.Equal(t, p.CityOrArea, resp.CityOrArea)
	assert.Equal(t, 4.5, resp.AverageRating)
	assert.Equal(t, 2, resp.ReviewCount)
}
