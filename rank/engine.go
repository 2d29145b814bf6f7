// Package rank 实现按浏览者偏好排序候选商品的排序引擎。
package rank

import (
	"context"
	"sort"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/model"
)

// DefaultLikeBoost 是命中喜欢类目时叠加到偏好分上的固定加分。
// 刻意大于离线模型的分值量级：用户的显式动作优先于离线学到的偏好。
const DefaultLikeBoost = 5.0

// Config 是排序引擎的可部署配置，替代散落的魔法常量。
type Config struct {
	// LikeBoost 命中喜欢类目时的加分；<=0 时使用 DefaultLikeBoost。
	LikeBoost float64

	// BaseViewerID 基础偏好分查询所用的基准浏览者。
	// 0 表示直接用请求浏览者本人；仅在个性化画像尚未覆盖全量用户、
	// 需要统一参考画像时配置。
	BaseViewerID int64
}

// LikeSource 提供浏览者的喜欢类目集合。
// Catalog 实现了它；不可用或出错时按空集处理。
type LikeSource interface {
	LikedCategories(ctx context.Context, viewerID int64) ([]string, error)
}

// Engine 组合偏好分、偏好模型与喜欢信号，对候选商品给出全序。
//
// 排序是尽力而为的咨询功能：偏好制品加载失败时引擎以"不可用"状态
// 存在，所有推荐请求静默退回最新优先排序，列表页永远可用。
type Engine struct {
	affinity core.AffinitySource
	model    model.PreferenceModel
	likes    LikeSource
	cfg      Config
}

// NewEngine 创建排序引擎。affinity 或 m 为 nil 表示制品不可用，
// 引擎进入永久降级态。
func NewEngine(affinity core.AffinitySource, m model.PreferenceModel, likes LikeSource, cfg Config) *Engine {
	if cfg.LikeBoost <= 0 {
		cfg.LikeBoost = DefaultLikeBoost
	}
	return &Engine{affinity: affinity, model: m, likes: likes, cfg: cfg}
}

// Available 表示偏好制品是否加载成功、推荐排序是否可用。
func (e *Engine) Available() bool {
	return e != nil && e.affinity != nil && e.model != nil
}

// ModelName 返回当前偏好模型名；不可用时返回空串。
func (e *Engine) ModelName() string {
	if !e.Available() {
		return ""
	}
	return e.model.Name()
}

// Rank 返回候选商品的新有序视图，不修改输入切片与其中的商品。
//
// sortMode 语义：
//   - SortModeNew: ID 降序（最新优先），永远可用
//   - SortModeRecommend: 购买概率降序；引擎不可用时等同 SortModeNew
//
// viewerID 为 0 或无法解析时按匿名处理：空喜欢集、全默认偏好分。
func (e *Engine) Rank(ctx context.Context, items []*core.Item, viewerID int64, mode core.SortMode) []*core.Item {
	ranked, _ := e.rank(ctx, items, viewerID, mode)
	return ranked
}

// rank 返回有序视图和与之对齐的概率（最新优先模式下为 nil）。
// 同包的 EngineNode 用概率回填 Score 与标签。
func (e *Engine) rank(ctx context.Context, items []*core.Item, viewerID int64, mode core.SortMode) ([]*core.Item, []float64) {
	out := make([]*core.Item, len(items))
	copy(out, items)

	if mode != core.SortModeRecommend || !e.Available() {
		// 最新优先：ID 降序。stable 保证同 ID（理论上不存在）输入序不变。
		sort.SliceStable(out, func(i, j int) bool {
			if out[i] == nil {
				return false
			}
			if out[j] == nil {
				return true
			}
			return out[i].ID > out[j].ID
		})
		return out, nil
	}

	likeSet := e.likedSet(ctx, viewerID)
	baseViewer := e.cfg.BaseViewerID
	if baseViewer == 0 {
		baseViewer = viewerID
	}

	probs := make([]float64, len(out))
	for i, it := range out {
		probs[i] = e.probability(ctx, baseViewer, likeSet, it)
	}

	// 概率降序的稳定排序：同分保持输入相对顺序，保证同输入同输出
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})

	ordered := make([]*core.Item, len(out))
	orderedProbs := make([]float64, len(out))
	for pos, i := range idx {
		ordered[pos] = out[i]
		orderedProbs[pos] = probs[i]
	}
	return ordered, orderedProbs
}

// probability 计算单个商品的购买概率。
// 未分类商品偏好分按 0 处理（不可能命中加分），仍然参与打分，绝不丢弃；
// 单个商品的模型故障只影响它自己（概率 0），不会中断整轮排序。
func (e *Engine) probability(ctx context.Context, baseViewer int64, likeSet map[string]bool, it *core.Item) float64 {
	if it == nil {
		return 0
	}

	var score float64
	if it.Classified() {
		s, err := e.affinity.Lookup(ctx, baseViewer, it.CategoryCode)
		if err == nil {
			score = s
		}
		if likeSet[it.CategoryCode] {
			score += e.cfg.LikeBoost
		}
	}

	prob, err := e.model.Predict(score)
	if err != nil {
		return 0
	}
	return prob
}

// likedSet 解析浏览者的喜欢类目集合；匿名浏览者或查询失败一律空集。
func (e *Engine) likedSet(ctx context.Context, viewerID int64) map[string]bool {
	if e.likes == nil || viewerID == 0 {
		return nil
	}
	codes, err := e.likes.LikedCategories(ctx, viewerID)
	if err != nil {
		return nil
	}
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}
