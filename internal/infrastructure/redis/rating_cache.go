package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// RatingCache は物件の平均評価のキャッシュを管理する
// 検索結果の一覧表示でレビュー集計を毎回引かないための読み取り用キャッシュ
type RatingCache struct {
	client *redis.Client
}

// NewRatingCache は新しいRatingCacheインスタンスを作成する
func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

// Get は物件の平均評価とレビュー件数をキャッシュから取得する
func (c *RatingCache) Get(ctx context.Context, propertyID string) (float64, int, error) {
	vals, err := c.client.HMGet(ctx, c.key(propertyID), "average", "count").Result()
	if err != nil {
		return 0, 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	if vals[0] == nil || vals[1] == nil {
		return 0, 0, ErrCacheMiss
	}

	var avg float64
	var count int
	if _, err := fmt.Sscanf(vals[0].(string), "%g", &avg); err != nil {
		return 0, 0, ErrCacheMiss
	}
	if _, err := fmt.Sscanf(vals[1].(string), "%d", &count); err != nil {
		return 0, 0, ErrCacheMiss
	}
	return avg, count, nil
}

// Set は物件の平均評価とレビュー件数をキャッシュに保存する
func (c *RatingCache) Set(ctx context.Context, propertyID string, average float64, count int, ttl time.Duration) error {
	key := c.key(propertyID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, "average", fmt.Sprintf("%g", average), "count", count)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は物件の評価キャッシュを無効化する
// レビュー投稿後に呼ばれる
func (c *RatingCache) Invalidate(ctx context.Context, propertyID string) error {
	if err := c.client.Del(ctx, c.key(propertyID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *RatingCache) key(propertyID string) string {
	return fmt.Sprintf("rating:property:%s", propertyID)
}
