// Package marketrank 是二手交易平台的类目归一与偏好排序引擎。
//
// 设计要点：
// - 类目归一：外部文本理解服务 + 确定性安全网（清洗/精确匹配/包含匹配/兜底），
//   分类结果永远落在封闭类目体系内
// - 偏好排序：离线训练的偏好制品（偏好分表 + 偏好模型）叠加浏览者的显式
//   喜欢信号；制品不可用时静默降级为最新优先
// - Pipeline-first: 列表页逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
package marketrank

import "github.com/rushteam/marketrank/pipeline"

// 轻量 facade：便于用户直接 import "marketrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
