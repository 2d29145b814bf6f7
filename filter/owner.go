package filter

import (
	"context"

	"github.com/rushteam/marketrank/core"
)

// OwnerFilter 过滤浏览者自己发布的商品（自己的东西不用推荐给自己）。
// 匿名浏览（ViewerID 为 0）时不过滤任何商品。
type OwnerFilter struct{}

func (f *OwnerFilter) Name() string { return "filter.owner" }

func (f *OwnerFilter) ShouldFilter(_ context.Context, rctx *core.RankContext, item *core.Item) (bool, error) {
	if rctx == nil || rctx.ViewerID == 0 {
		return false, nil
	}
	return item.OwnerID == rctx.ViewerID, nil
}

var _ Filter = (*OwnerFilter)(nil)
