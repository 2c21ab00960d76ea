package daterange

import (
	"fmt"
	"time"
)

// DateRange は半開区間 [Start, End) の日付範囲を表す値オブジェクト
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New は新しい日付範囲を作成する
// Start < End でない場合は ErrInvalidRange を返す
func New(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	if !start.Before(end) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// MustNew はテストやフィクスチャ用で、不正な範囲の場合 panic する
func MustNew(start, end time.Time) DateRange {
	r, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains は other が自身の範囲に完全に含まれるかを返す
func (r DateRange) Contains(other DateRange) bool {
	return !r.Start.After(other.Start) && !r.End.Before(other.End)
}

// Overlaps は other と重なるかを返す
// 半開区間のため、端点が接するだけの範囲（[1,5) と [5,9)）は重ならない
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Equal は開始と終了が一致するかを返す
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// IsZero は未設定の範囲かを返す
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s to %s)", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
