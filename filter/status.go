package filter

import (
	"context"

	"github.com/rushteam/marketrank/core"
)

// StatusFilter 按商品状态过滤：只保留 Allowed 中的状态。
// Allowed 为空时默认只保留上架中的商品。
type StatusFilter struct {
	Allowed []string
}

func NewStatusFilter(allowed ...string) *StatusFilter {
	if len(allowed) == 0 {
		allowed = []string{core.ItemStatusOnSale}
	}
	return &StatusFilter{Allowed: allowed}
}

func (f *StatusFilter) Name() string { return "filter.status" }

func (f *StatusFilter) ShouldFilter(_ context.Context, _ *core.RankContext, item *core.Item) (bool, error) {
	allowed := f.Allowed
	if len(allowed) == 0 {
		allowed = []string{core.ItemStatusOnSale}
	}
	for _, s := range allowed {
		if item.Status == s {
			return false, nil
		}
	}
	return true, nil
}

var _ Filter = (*StatusFilter)(nil)
