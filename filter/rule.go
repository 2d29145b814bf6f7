package filter

import (
	"context"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pkg/dsl"
)

// RuleFilter 按 CEL 规则表达式过滤，表达式为真的商品被移除。
// 用于配置驱动的运营规则，例如：
//   - `item.category == "other" && item.price > 100000`
//   - `label.recall_source.contains("hot") && item.status != "on_sale"`
type RuleFilter struct {
	Expr string
}

func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(_ context.Context, rctx *core.RankContext, item *core.Item) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

var _ Filter = (*RuleFilter)(nil)
