package core

import "context"

// Catalog 是商品/喜欢存储的领域接口（外部协作方）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 排序与分类引擎只依赖此接口，不关心底层是 SQLite、MySQL 还是 RPC
//
// 实现：
//   - catalog.SQLite 实现此接口
type Catalog interface {
	// GetItem 按 ID 读取单个商品；不存在时返回 NOT_FOUND。
	GetItem(ctx context.Context, id int64) (*Item, error)

	// ListItems 返回候选商品全集（ID 降序，即最新优先）。
	ListItems(ctx context.Context) ([]*Item, error)

	// ItemsByOwner 返回某用户发布的商品（ID 降序）。
	ItemsByOwner(ctx context.Context, ownerID int64) ([]*Item, error)

	// CreateItem 落库新商品，返回分配的 ID。
	CreateItem(ctx context.Context, item *Item) (int64, error)

	// AssignCategory 持久化分类结果（创建时归一或批量重分类）。
	AssignCategory(ctx context.Context, itemID int64, categoryCode string) error

	// Related 返回与目标商品同类目的其他商品（排除自身，最多 limit 个）。
	Related(ctx context.Context, itemID int64, limit int) ([]*Item, error)

	// LikedCategories 返回浏览者喜欢过的商品所覆盖的类目码集合。
	// 浏览者不存在或没有喜欢记录时返回空集，不返回错误。
	LikedCategories(ctx context.Context, viewerID int64) ([]string, error)

	// Close 释放底层资源
	Close() error
}

// ErrItemNotFound 表示商品不存在。
var ErrItemNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: item not found")
