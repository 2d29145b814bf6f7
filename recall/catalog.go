package recall

import (
	"context"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pipeline"
	"github.com/rushteam/marketrank/pkg/utils"
)

// Catalog 是从商品存储读取候选集的召回源：最新上架的商品（ID 降序）。
// 这是列表页的基础候选来源，排序引擎在其上做推荐重排。
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Store core.Catalog

	// TopK 限制候选数量；<=0 表示不截断
	TopK int
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RankContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RankContext,
) ([]*core.Item, error) {
	if r.Store == nil {
		return nil, nil
	}
	items, err := r.Store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if r.TopK > 0 && len(items) > r.TopK {
		items = items[:r.TopK]
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
	}
	return items, nil
}

var _ Source = (*Catalog)(nil)
var _ pipeline.Node = (*Catalog)(nil)
