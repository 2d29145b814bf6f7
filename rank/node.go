package rank

import (
	"context"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pipeline"
	"github.com/rushteam/marketrank/pkg/utils"
)

// EngineNode 把排序引擎接入 Pipeline。
// - 按 rctx.SortMode 排序（为空时默认 recommend）
// - 推荐模式下把购买概率写入 item.Score，并记 rank_model 标签
// - 降级路径记 rank_fallback 标签，方便观测降级占比
type EngineNode struct {
	Engine *Engine
}

func (n *EngineNode) Name() string        { return "rank.engine" }
func (n *EngineNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *EngineNode) Process(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Engine == nil || len(items) == 0 {
		return items, nil
	}

	mode := core.SortModeRecommend
	var viewerID int64
	if rctx != nil {
		if rctx.SortMode != "" {
			mode = rctx.SortMode
		}
		viewerID = rctx.ViewerID
	}

	ordered, probs := n.Engine.rank(ctx, items, viewerID, mode)
	if probs == nil {
		for _, it := range ordered {
			if it == nil {
				continue
			}
			it.PutLabel("rank_fallback", utils.Label{Value: string(core.SortModeNew), Source: "rank"})
		}
		return ordered, nil
	}

	for i, it := range ordered {
		if it == nil {
			continue
		}
		it.Score = probs[i]
		it.PutLabel("rank_model", utils.Label{Value: n.Engine.ModelName(), Source: "rank"})
	}
	return ordered, nil
}

var _ pipeline.Node = (*EngineNode)(nil)
