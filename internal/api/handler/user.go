package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(s UserServiceInterface) *UserHandler {
	return &UserHandler{service: s}
}

type RegisterStudentRequest struct {
	Name           string `json:"name" validate:"required" example:"山田 太郎"`
	Email          string `json:"email" validate:"required,email" example:"taro@example.ac.jp"`
	UniversityName string `json:"university_name" validate:"required" example:"東都大学"`
	StudentNumber  string `json:"student_number" validate:"required" example:"S2024-0123"`
}

type RegisterHomeownerRequest struct {
	Name  string `json:"name" validate:"required" example:"佐藤 花子"`
	Email string `json:"email" validate:"required,email" example:"hanako@example.com"`
}

type UserResponse struct {
	ID             string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name           string    `json:"name" example:"山田 太郎"`
	Email          string    `json:"email" example:"taro@example.ac.jp"`
	Role           string    `json:"role" example:"student"`
	Status         string    `json:"status" example:"active"`
	UniversityName string    `json:"university_name,omitempty" example:"東都大学"`
	StudentNumber  string    `json:"student_number,omitempty" example:"S2024-0123"`
	CreatedAt      time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID: u.ID, Name: u.Name, Email: u.Email,
		Role: string(u.Role), Status: string(u.Status),
		UniversityName: u.UniversityName, StudentNumber: u.StudentNumber,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterStudent godoc
// @Summary 学生アカウントを登録
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterStudentRequest true "学生情報"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "メールアドレスが使用済み"
// @Router /users/students [post]
func (h *UserHandler) RegisterStudent(c echo.Context) error {
	var req RegisterStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.RegisterStudent(c.Request().Context(), application.RegisterStudentInput{
		Name: req.Name, Email: req.Email,
		UniversityName: req.UniversityName, StudentNumber: req.StudentNumber,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// RegisterHomeowner godoc
// @Summary 家主アカウントを登録
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterHomeownerRequest true "家主情報"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "メールアドレスが使用済み"
// @Router /users/homeowners [post]
func (h *UserHandler) RegisterHomeowner(c echo.Context) error {
	var req RegisterHomeownerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.RegisterHomeowner(c.Request().Context(), application.RegisterHomeownerInput{
		Name: req.Name, Email: req.Email,
	})
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// GetByID godoc
// @Summary ユーザーを取得
// @Tags users
// @Produce json
// @Param id path string true "ユーザーID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	u, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// List godoc
// @Summary ユーザー一覧を取得
// @Tags users
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	users, err := h.service.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return domainHTTPError(err)
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary アカウントを無効化
// @Description 無効化されたアカウントは新規の予約操作を行えません
// @Tags users
// @Produce json
// @Param id path string true "ユーザーID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	u, err := h.service.DeactivateUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
