package recall

import (
	"context"

	"github.com/rushteam/marketrank/core"
)

// Source 表示一个可复用的召回源（最新/热门/...）。
// 可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RankContext) ([]*core.Item, error)
}
