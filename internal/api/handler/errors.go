package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/booking"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/daterange"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/property"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/review"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/room"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// domainHTTPError はドメインエラーをHTTPステータスに変換する
// 各ハンドラーのエラー分岐を共通化する
func domainHTTPError(err error) error {
	switch {
	// 404: 対象が存在しない
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, property.ErrPropertyNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, review.ErrReviewNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	// 403: 所有者・本人以外の操作
	case errors.Is(err, booking.ErrNotBookingOwner),
		errors.Is(err, property.ErrNotPropertyOwner),
		errors.Is(err, review.ErrNotBookingStudent):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	// 409: 期間の重複・メールの重複
	case errors.Is(err, booking.ErrRoomNotAvailable),
		errors.Is(err, user.ErrEmailAlreadyInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	// 422: 無効な状態遷移
	case errors.Is(err, booking.ErrBookingNotRequested),
		errors.Is(err, review.ErrNotReviewable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	// 400: バリデーション・業務ルール違反
	case errors.Is(err, booking.ErrOutsideAvailability),
		errors.Is(err, user.ErrAccountDeactivated),
		errors.Is(err, user.ErrNotStudent),
		errors.Is(err, user.ErrNotHomeowner),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, room.ErrNegativeRent),
		errors.Is(err, property.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidRating):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
