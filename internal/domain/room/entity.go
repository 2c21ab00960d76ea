package room

import (
	"strings"
	"time"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
)

// Type は部屋の種別を表す
type Type string

const (
	TypeSingle  Type = "single"
	TypeDouble  Type = "double"
	TypeEnSuite Type = "en_suite"
	TypeStudio  Type = "studio"
)

// Amenity は部屋の設備を表す
type Amenity string

const (
	AmenityWifi          Amenity = "wifi"
	AmenityDesk          Amenity = "desk"
	AmenityKitchenAccess Amenity = "kitchen_access"
	AmenityLaundry       Amenity = "laundry"
	AmenityParking       Amenity = "parking"
	AmenityBillsIncluded Amenity = "bills_included"
)

// Room は物件内の貸出対象の部屋を表す
// Availability は部屋全体の貸出可能期間で、予約はこの期間に完全に収まる必要がある
type Room struct {
	ID           string
	PropertyID   string
	Type         Type
	MonthlyRent  int
	Description  string
	Amenities    []Amenity
	Availability daterange.DateRange
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRoom は新しい部屋を作成する
func NewRoom(propertyID string, roomType Type, monthlyRent int, description string, amenities []Amenity, availability daterange.DateRange, now time.Time) *Room {
	return &Room{
		PropertyID:   propertyID,
		Type:         roomType,
		MonthlyRent:  monthlyRent,
		Description:  description,
		Amenities:    amenities,
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsWithinAvailability は要求期間が貸出可能期間に完全に収まるかを返す
func (r *Room) IsWithinAvailability(requested daterange.DateRange) bool {
	return r.Availability.Contains(requested)
}

// Validate は部屋の検証を行う
func (r *Room) Validate() error {
	if strings.TrimSpace(r.PropertyID) == "" {
		return ErrPropertyIDRequired
	}
	if r.Type == "" {
		return ErrRoomTypeRequired
	}
	if r.MonthlyRent < 0 {
		return ErrNegativeRent
	}
	if r.Availability.IsZero() {
		return ErrAvailabilityRequired
	}
	return nil
}
