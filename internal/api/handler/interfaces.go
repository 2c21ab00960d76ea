package handler

import (
	"context"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// UserServiceInterface はユーザーサービスのインターフェース
type UserServiceInterface interface {
	RegisterStudent(ctx context.Context, input application.RegisterStudentInput) (*user.User, error)
	RegisterHomeowner(ctx context.Context, input application.RegisterHomeownerInput) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error)
	DeactivateUser(ctx context.Context, id string) (*user.User, error)
}

// ListingServiceInterface は物件掲載サービスのインターフェース
type ListingServiceInterface interface {
	AddProperty(ctx context.Context, input application.AddPropertyInput) (*property.Property, error)
	AddRoom(ctx context.Context, input application.AddRoomInput) (*room.Room, error)
	UpdateRoom(ctx context.Context, input application.UpdateRoomInput) (*room.Room, error)
	RemoveRoom(ctx context.Context, ownerID, roomID string) error
	RemoveProperty(ctx context.Context, ownerID, propertyID string) error
	GetProperty(ctx context.Context, id string) (*property.Property, error)
	GetOwnerProperties(ctx context.Context, ownerID string) ([]*property.Property, error)
	GetRoom(ctx context.Context, id string) (*room.Room, error)
	GetPropertyRooms(ctx context.Context, propertyID string) ([]*room.Room, error)
	SearchRooms(ctx context.Context, criteria room.SearchCriteria) ([]*room.Room, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	RequestBooking(ctx context.Context, input application.RequestBookingInput) (*booking.Booking, error)
	AcceptBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error)
	RejectBooking(ctx context.Context, homeownerID, bookingID string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, studentID, bookingID string) (*booking.Booking, error)
	IsRoomFree(ctx context.Context, roomID string, period daterange.DateRange) (bool, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetStudentBookings(ctx context.Context, studentID string) ([]*booking.Booking, error)
	GetHomeownerBookings(ctx context.Context, homeownerID string) ([]*booking.Booking, error)
}

// ReviewServiceInterface はレビューサービスのインターフェース
type ReviewServiceInterface interface {
	LeaveReview(ctx context.Context, input application.LeaveReviewInput) (*review.Review, error)
	GetPropertyReviews(ctx context.Context, propertyID string) ([]*review.Review, error)
	GetPropertyRating(ctx context.Context, propertyID string) (float64, int, error)
}
