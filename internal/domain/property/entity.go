package property

import (
	"strings"
	"time"
)

// Property は家主が貸し出す物件を表す
type Property struct {
	ID          string
	OwnerID     string
	Address     string
	CityOrArea  string
	Description string
	Rating      RatingSummary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProperty は新しい物件を作成する
func NewProperty(ownerID, address, cityOrArea, description string, now time.Time) *Property {
	return &Property{
		OwnerID:     ownerID,
		Address:     address,
		CityOrArea:  cityOrArea,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyReview はレビューの評価を集計に反映する
func (p *Property) ApplyReview(rating int, now time.Time) error {
	if err := p.Rating.Add(rating); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// Validate は物件の検証を行う
func (p *Property) Validate() error {
	if strings.TrimSpace(p.OwnerID) == "" {
		return ErrOwnerIDRequired
	}
	if strings.TrimSpace(p.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(p.CityOrArea) == "" {
		return ErrCityOrAreaRequired
	}
	return nil
}

// RatingSummary は物件に対するレビュー評価の集計
type RatingSummary struct {
	TotalStars  int
	ReviewCount int
}

// Add は1件の評価（1〜5）を集計に加える
func (s *RatingSummary) Add(stars int) error {
	if stars < 1 || stars > 5 {
		return ErrInvalidRating
	}
	s.TotalStars += stars
	s.ReviewCount++
	return nil
}

// Average は平均評価を返す（レビューがない場合は 0）
func (s RatingSummary) Average() float64 {
	if s.ReviewCount == 0 {
		return 0
	}
	return float64(s.TotalStars) / float64(s.ReviewCount)
}
