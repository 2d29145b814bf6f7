package core

import "github.com/rushteam/marketrank/pkg/utils"

// SortMode 是列表页的排序模式。
type SortMode string

const (
	// SortModeNew 按上架时间（ID 降序）排序，不依赖任何模型，永远可用。
	SortModeNew SortMode = "new"
	// SortModeRecommend 按偏好模型输出的购买概率排序；模型不可用时降级为 SortModeNew。
	SortModeRecommend SortMode = "recommend"
)

// RankContext 承载浏览者/场景信息，贯穿整个 Pipeline 透传。
// ViewerID 为 0 表示匿名浏览：无喜欢信号，命中默认偏好分。
type RankContext struct {
	ViewerID int64
	Scene    string
	SortMode SortMode

	// Params 请求级上下文参数（query、device_type、latitude 等）。
	Params map[string]any

	// Labels 是浏览者级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label
}

// PutLabel 写入浏览者级 Label。
func (rctx *RankContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取浏览者级 Label。
func (rctx *RankContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
