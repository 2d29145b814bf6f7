// Package service 把分类器、排序引擎与商品存储组合成面向调用方的操作。
// 不含任何 HTTP/认证逻辑，宿主 API 层自行映射请求与响应。
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/rushteam/marketrank/classify"
	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/rank"
)

// Listing 是商品列表域的应用服务。
// Engine 为 nil 或不可用时，所有列表请求退回最新优先排序；
// Classifier/Analyzer 为 nil 时相应功能静默关闭，商品照常落库。
type Listing struct {
	Catalog    core.Catalog
	Classifier *classify.Classifier
	Analyzer   *classify.Analyzer
	Engine     *rank.Engine
}

// CreateItemInput 是发布商品的入参。
type CreateItemInput struct {
	OwnerID     int64
	ChannelID   int64 // 0 表示使用 OwnerID 推导的默认频道（由 Catalog 实现决定）
	Title       string
	Description string
	Price       int64
}

// ChannelResolver 是 Catalog 的可选扩展：按用户解析默认频道。
// catalog.SQLite 实现了它。
type ChannelResolver interface {
	ChannelOf(ctx context.Context, userID int64) (int64, error)
}

// CreateItem 发布新商品：先做一次类目归一（尽力而为），再落库。
// 分类失败只会让商品挂上兜底类目码，绝不阻塞发布。
func (l *Listing) CreateItem(ctx context.Context, in CreateItemInput) (*core.Item, error) {
	if in.Title == "" {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "listing: title is required")
	}

	channelID := in.ChannelID
	if channelID == 0 {
		resolver, ok := l.Catalog.(ChannelResolver)
		if !ok {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "listing: channel is required")
		}
		var err error
		channelID, err = resolver.ChannelOf(ctx, in.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("resolve channel: %w", err)
		}
	}

	item := core.NewItem(0)
	item.OwnerID = in.OwnerID
	item.ChannelID = channelID
	item.Title = in.Title
	item.Description = in.Description
	item.Price = in.Price
	if l.Classifier != nil {
		item.CategoryCode = l.Classifier.Classify(ctx, in.Title)
	}

	id, err := l.Catalog.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	item.ID = id
	return item, nil
}

// Feed 返回按 sortMode 排好序的候选商品列表。
// viewerID 为 0 表示匿名浏览。
func (l *Listing) Feed(ctx context.Context, viewerID int64, mode core.SortMode) ([]*core.Item, error) {
	items, err := l.Catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if l.Engine == nil {
		// 无引擎：Catalog 已经按最新优先返回
		return items, nil
	}
	return l.Engine.Rank(ctx, items, viewerID, mode), nil
}

// UserItems 返回某用户发布的商品，最新优先。
func (l *Listing) UserItems(ctx context.Context, ownerID int64) ([]*core.Item, error) {
	return l.Catalog.ItemsByOwner(ctx, ownerID)
}

// RelatedLimit 是相关商品推荐的默认条数。
const RelatedLimit = 3

// Related 返回与目标商品同类目的其他商品。
func (l *Listing) Related(ctx context.Context, itemID int64) ([]*core.Item, error) {
	return l.Catalog.Related(ctx, itemID, RelatedLimit)
}

// Analyze 对商品文案做上架审核；未配置 Analyzer 时返回安全兜底结论。
func (l *Listing) Analyze(ctx context.Context, title, description string) classify.Verdict {
	if l.Analyzer == nil {
		return classify.Verdict{SuggestedChannel: "unknown", Valid: false, Reason: "moderation disabled"}
	}
	return l.Analyzer.Analyze(ctx, title, description)
}

// Reclassify 对存量商品批量重跑分类（迁移场景）。
// all 为 false 时只处理尚未分类的商品；返回成功更新的条数。
// 单个商品的失败记日志后继续，不中断整批。
func (l *Listing) Reclassify(ctx context.Context, all bool) (int, error) {
	if l.Classifier == nil {
		return 0, core.NewDomainError(core.ModuleTaxonomy, core.ErrorCodeUnavailable, "listing: classifier not configured")
	}

	items, err := l.Catalog.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	updated := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		if !all && it.Classified() {
			continue
		}
		code := l.Classifier.Classify(ctx, it.Title)
		if code == it.CategoryCode {
			continue
		}
		if err := l.Catalog.AssignCategory(ctx, it.ID, code); err != nil {
			log.Printf("reclassify item=%d error: %v", it.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}
