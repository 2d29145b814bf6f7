package recall

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pipeline"
	"github.com/rushteam/marketrank/pkg/utils"
)

// Hot 是热门召回源，从 KV 存储读取热门商品榜单。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按热度分排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果配置了 Catalog，用它把榜单 ID 补全成完整商品；取不到的 ID 跳过
// - 榜单为空时使用内存中的 IDs 作为 fallback
type Hot struct {
	Store   core.Store
	Key     string // 存储 key，例如 "hot:items"
	Catalog core.Catalog
	IDs     []int64 // fallback 内存榜单

	// TopK 榜单长度上限；<=0 时取 100
	TopK int64
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RankContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RankContext,
) ([]*core.Item, error) {
	ids := r.loadIDs(ctx)
	if len(ids) == 0 {
		ids = r.IDs
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := r.hydrate(ctx, id)
		if it == nil {
			continue
		}
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// loadIDs 从 Store 读取榜单 ID 列表。
func (r *Hot) loadIDs(ctx context.Context) []int64 {
	if r.Store == nil || r.Key == "" {
		return nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 100
	}

	if kvStore, ok := r.Store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, r.Key, 0, topK-1)
		if err == nil && len(members) > 0 {
			ids := make([]int64, 0, len(members))
			for _, m := range members {
				if id, err := strconv.ParseInt(m, 10, 64); err == nil {
					ids = append(ids, id)
				}
			}
			return ids
		}
		return nil
	}

	data, err := r.Store.Get(ctx, r.Key)
	if err != nil {
		return nil
	}
	var parsed []int64
	if json.Unmarshal(data, &parsed) != nil {
		return nil
	}
	return parsed
}

// hydrate 把榜单 ID 补全成完整商品；没有 Catalog 时返回只含 ID 的占位商品。
func (r *Hot) hydrate(ctx context.Context, id int64) *core.Item {
	if r.Catalog == nil {
		return core.NewItem(id)
	}
	it, err := r.Catalog.GetItem(ctx, id)
	if err != nil {
		// 榜单里可能残留已下架/已删除的 ID，跳过即可
		return nil
	}
	return it
}

var _ Source = (*Hot)(nil)
var _ pipeline.Node = (*Hot)(nil)
