package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhyspreston2/go-student-rentals/internal/domain/user"
)

// UserService は学生・家主アカウントを管理する
type UserService struct {
	userRepo user.Repository

	now   func() time.Time
	newID func() string
}

func NewUserService(ur user.Repository) *UserService {
	return &UserService{
		userRepo: ur,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

type RegisterStudentInput struct {
	Name           string
	Email          string
	UniversityName string
	StudentNumber  string
}

// RegisterStudent は新しい学生アカウントを登録する
func (s *UserService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*user.User, error) {
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	u := user.NewStudent(input.Name, input.Email, input.UniversityName, input.StudentNumber, s.now())
	u.ID = s.newID()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type RegisterHomeownerInput struct {
	Name  string
	Email string
}

// RegisterHomeowner は新しい家主アカウントを登録する
func (s *UserService) RegisterHomeowner(ctx context.Context, input RegisterHomeownerInput) (*user.User, error) {
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	u := user.NewHomeowner(input.Name, input.Email, s.now())
	u.ID = s.newID()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser はIDからユーザーを取得する
func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers はユーザー一覧を取得する
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.userRepo.List(ctx, limit, offset)
}

// DeactivateUser はアカウントを無効化する
// 無効化されたアカウントは予約のリクエスト・承認ができなくなる
func (s *UserService) DeactivateUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Deactivate(s.now())
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user.ErrEmailAlreadyInUse
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("メールアドレスの確認に失敗: %w", err)
	}
	return nil
}
