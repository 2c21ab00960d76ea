package user

import (
	"strings"
	"time"
)

// Role はユーザーの種別を表す
type Role string

const (
	RoleStudent   Role = "student"
	RoleHomeowner Role = "homeowner"
	RoleAdmin     Role = "admin"
)

// AccountStatus はアカウントの状態を表す
type AccountStatus string

const (
	StatusActive      AccountStatus = "active"
	StatusDeactivated AccountStatus = "deactivated"
)

// User は学生・家主・管理者のアカウントを表す
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// 学生のみ
	UniversityName string
	StudentNumber  string
	Verified       bool
}

// NewStudent は新しい学生アカウントを作成する
func NewStudent(name, email, universityName, studentNumber string, now time.Time) *User {
	return &User{
		Name:           name,
		Email:          email,
		Role:           RoleStudent,
		Status:         StatusActive,
		UniversityName: universityName,
		StudentNumber:  studentNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewHomeowner は新しい家主アカウントを作成する
func NewHomeowner(name, email string, now time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		Role:      RoleHomeowner,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive はアカウントが有効かを返す
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsStudent は学生アカウントかを返す
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsHomeowner は家主アカウントかを返す
func (u *User) IsHomeowner() bool {
	return u.Role == RoleHomeowner
}

// Deactivate はアカウントを無効化する
func (u *User) Deactivate(now time.Time) {
	u.Status = StatusDeactivated
	u.UpdatedAt = now
}

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmailRequired
	}
	if u.Role == RoleStudent {
		if strings.TrimSpace(u.UniversityName) == "" {
			return ErrUniversityRequired
		}
		if strings.TrimSpace(u.StudentNumber) == "" {
			return ErrStudentNumberRequired
		}
	}
	return nil
}
