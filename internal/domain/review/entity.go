package review

import (
	"strings"
	"time"
)

// Review は滞在を終えた学生による物件への評価を表す
type Review struct {
	ID         string
	BookingID  string
	StudentID  string
	PropertyID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// NewReview は新しいレビューを作成する
func NewReview(id, bookingID, studentID, propertyID string, rating int, comment string, now time.Time) *Review {
	return &Review{
		ID:         id,
		BookingID:  bookingID,
		StudentID:  studentID,
		PropertyID: propertyID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now,
	}
}

// Validate はレビューの検証を行う
func (r *Review) Validate() error {
	if strings.TrimSpace(r.BookingID) == "" {
		return ErrBookingIDRequired
	}
	if strings.TrimSpace(r.StudentID) == "" {
		return ErrStudentIDRequired
	}
	if strings.TrimSpace(r.PropertyID) == "" {
		return ErrPropertyIDRequired
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
