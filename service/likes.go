package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/rank"
)

// CachedLikes 用 KV 存储给喜欢类目集合加一层短 TTL 缓存，
// 避免列表页高频请求反复打到商品库。缓存失效或出错时直接回源，
// 绝不把缓存故障放大成排序故障。
type CachedLikes struct {
	Source rank.LikeSource
	Store  core.Store

	// TTL 缓存秒数；<=0 时取 60
	TTL int
}

func (c *CachedLikes) LikedCategories(ctx context.Context, viewerID int64) ([]string, error) {
	if c.Store == nil {
		return c.Source.LikedCategories(ctx, viewerID)
	}

	cacheKey := fmt.Sprintf("likes:%d", viewerID)
	if data, err := c.Store.Get(ctx, cacheKey); err == nil {
		var codes []string
		if json.Unmarshal(data, &codes) == nil {
			return codes, nil
		}
	}

	codes, err := c.Source.LikedCategories(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = 60
	}
	if data, err := json.Marshal(codes); err == nil {
		// 写缓存失败可忽略，下次请求回源即可
		_ = c.Store.Set(ctx, cacheKey, data, ttl)
	}
	return codes, nil
}

var _ rank.LikeSource = (*CachedLikes)(nil)
