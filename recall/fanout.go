package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 单个召回源超时或出错只影响它自己的贡献，不中断其余召回源。
type Fanout struct {
	Sources       []Source
	Dedup         bool          // 按商品 ID 去重，保留先注册来源的结果
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RankContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Item, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时该来源贡献为空，不中断其他召回源
				return nil
			}

			mu.Lock()
			results[idx] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按来源注册顺序合并，保证同输入同输出
	var all []*core.Item
	for _, items := range results {
		all = append(all, items...)
	}
	if !n.Dedup {
		return all, nil
	}

	seen := make(map[int64]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if old, ok := seen[it.ID]; ok {
			// 同一商品被多个来源召回：合并标签，保留先出现的实例
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out, nil
}

var _ pipeline.Node = (*Fanout)(nil)
