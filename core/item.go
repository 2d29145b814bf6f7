package core

import "github.com/rushteam/marketrank/pkg/utils"

// 商品状态。上架中的商品才会进入推荐候选集。
const (
	ItemStatusOnSale  = "on_sale"
	ItemStatusSoldOut = "sold_out"
)

// Item 是排序链路中的统一承载结构：商品属性、分数、标签。
// CategoryCode 为空表示尚未完成类目归一；Score 用于排序决策，
// Labels 用于解释与策略驱动。
type Item struct {
	ID           int64
	ChannelID    int64
	OwnerID      int64
	Title        string
	Description  string
	Price        int64
	Status       string
	CategoryCode string
	Score        float64
	Labels       map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Status: ItemStatusOnSale,
		Labels: make(map[string]utils.Label),
	}
}

// Classified 表示商品是否已经挂上类目码。
func (it *Item) Classified() bool {
	return it.CategoryCode != ""
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
