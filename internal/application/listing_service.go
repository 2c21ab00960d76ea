package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// ListingService は物件と部屋の掲載を管理する
type ListingService struct {
	propertyRepo property.Repository
	roomRepo     room.Repository
	userRepo     user.Repository

	now   func() time.Time
	newID func() string
}

func NewListingService(pr property.Repository, rr room.Repository, ur user.Repository) *ListingService {
	return &ListingService{
		propertyRepo: pr,
		roomRepo:     rr,
		userRepo:     ur,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type AddPropertyInput struct {
	OwnerID     string
	Address     string
	CityOrArea  string
	Description string
}

// AddProperty は家主が新しい物件を掲載する
func (s *ListingService) AddProperty(ctx context.Context, input AddPropertyInput) (*property.Property, error) {
	owner, err := s.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("家主の取得に失敗: %w", err)
	}
	if !owner.IsHomeowner() {
		return nil, user.ErrNotHomeowner
	}
	if !owner.IsActive() {
		return nil, user.ErrAccountDeactivated
	}

	p := property.NewProperty(input.OwnerID, input.Address, input.CityOrArea, input.Description, s.now())
	p.ID = s.newID()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type AddRoomInput struct {
	OwnerID      string
	PropertyID   string
	Type         room.Type
	MonthlyRent  int
	Description  string
	Amenities    []room.Amenity
	Availability daterange.DateRange
}

// AddRoom は家主が自分の物件に部屋を追加する
func (s *ListingService) AddRoom(ctx context.Context, input AddRoomInput) (*room.Room, error) {
	p, err := s.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != input.OwnerID {
		return nil, property.ErrNotPropertyOwner
	}

	r := room.NewRoom(input.PropertyID, input.Type, input.MonthlyRent, input.Description, input.Amenities, input.Availability, s.now())
	r.ID = s.newID()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

type UpdateRoomInput struct {
	OwnerID      string
	RoomID       string
	MonthlyRent  *int
	Description  *string
	Amenities    []room.Amenity
	Availability *daterange.DateRange
}

// UpdateRoom は家主が部屋の掲載内容を更新する
// nil のフィールドは変更されない
func (s *ListingService) UpdateRoom(ctx context.Context, input UpdateRoomInput) (*room.Room, error) {
	r, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	p, err := s.propertyRepo.GetByID(ctx, r.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != input.OwnerID {
		return nil, property.ErrNotPropertyOwner
	}

	if input.MonthlyRent != nil {
		if *input.MonthlyRent < 0 {
			return nil, room.ErrNegativeRent
		}
		r.MonthlyRent = *input.MonthlyRent
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.Amenities != nil {
		r.Amenities = input.Amenities
	}
	if input.Availability != nil {
		r.Availability = *input.Availability
	}
	r.UpdatedAt = s.now()

	if err := s.roomRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// RemoveRoom は家主が部屋の掲載を取り下げる
func (s *ListingService) RemoveRoom(ctx context.Context, ownerID, roomID string) error {
	r, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	p, err := s.propertyRepo.GetByID(ctx, r.PropertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return property.ErrNotPropertyOwner
	}
	return s.roomRepo.Delete(ctx, roomID)
}

// RemoveProperty は家主が物件の掲載を取り下げる（紐づく部屋も消える）
func (s *ListingService) RemoveProperty(ctx context.Context, ownerID, propertyID string) error {
	p, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return property.ErrNotPropertyOwner
	}
	return s.propertyRepo.Delete(ctx, propertyID)
}

// GetProperty はIDから物件を取得する
func (s *ListingService) GetProperty(ctx context.Context, id string) (*property.Property, error) {
	return s.propertyRepo.GetByID(ctx, id)
}

// GetOwnerProperties は家主の物件一覧を取得する
func (s *ListingService) GetOwnerProperties(ctx context.Context, ownerID string) ([]*property.Property, error) {
	return s.propertyRepo.GetByOwnerID(ctx, ownerID)
}

// GetRoom はIDから部屋を取得する
func (s *ListingService) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

// GetPropertyRooms は物件に属する部屋一覧を取得する
func (s *ListingService) GetPropertyRooms(ctx context.Context, propertyID string) ([]*room.Room, error) {
	return s.roomRepo.GetByPropertyID(ctx, propertyID)
}

// SearchRooms は条件に合致する部屋を検索する
// 期間条件は貸出可能期間への包含のみで判定する。承認済み予約との
// 重複まで含めた空き確認は BookingService.IsRoomFree が担う
func (s *ListingService) SearchRooms(ctx context.Context, criteria room.SearchCriteria) ([]*room.Room, error) {
	return s.roomRepo.Search(ctx, criteria)
}
