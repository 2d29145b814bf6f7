// Package catalog 提供 core.Catalog 的 SQLite 实现：商品/频道/用户/喜欢
// 的常规 CRUD 存储，供分类与排序引擎作为外部协作方消费。
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rushteam/marketrank/core"
)

// SQLite 是基于 SQLite 的商品/喜欢存储。
// 路径传 ":memory:" 可得到测试用的内存库。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite 打开（必要时初始化）商品库。
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS channels (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_channels_user ON channels(user_id);

	CREATE TABLE IF NOT EXISTS items (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		channel_id    INTEGER NOT NULL,
		title         TEXT NOT NULL,
		description   TEXT DEFAULT '',
		price         INTEGER DEFAULT 0,
		status        TEXT DEFAULT 'on_sale',
		category_code TEXT DEFAULT '',
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_items_channel ON items(channel_id);
	CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_code);

	CREATE TABLE IF NOT EXISTS likes (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL,
		item_id    INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_user_item ON likes(user_id, item_id);
	`
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

const itemColumns = `i.id, i.channel_id, c.user_id, i.title, i.description, i.price, i.status, i.category_code`

func scanItem(row interface{ Scan(...any) error }) (*core.Item, error) {
	it := core.NewItem(0)
	err := row.Scan(&it.ID, &it.ChannelID, &it.OwnerID, &it.Title, &it.Description, &it.Price, &it.Status, &it.CategoryCode)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *SQLite) queryItems(ctx context.Context, query string, args ...any) ([]*core.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*core.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem 按 ID 读取单个商品。
func (s *SQLite) GetItem(ctx context.Context, id int64) (*core.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN channels c ON c.id = i.channel_id WHERE i.id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ListItems 返回候选商品全集，最新优先。
func (s *SQLite) ListItems(ctx context.Context) ([]*core.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN channels c ON c.id = i.channel_id ORDER BY i.id DESC`)
}

// ItemsByOwner 返回某用户发布的商品，最新优先。
func (s *SQLite) ItemsByOwner(ctx context.Context, ownerID int64) ([]*core.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN channels c ON c.id = i.channel_id
		 WHERE c.user_id = ? ORDER BY i.id DESC`, ownerID)
}

// CreateItem 落库新商品，返回分配的 ID。
func (s *SQLite) CreateItem(ctx context.Context, item *core.Item) (int64, error) {
	status := item.Status
	if status == "" {
		status = core.ItemStatusOnSale
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (channel_id, title, description, price, status, category_code)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ChannelID, item.Title, item.Description, item.Price, status, item.CategoryCode)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AssignCategory 持久化分类结果。
func (s *SQLite) AssignCategory(ctx context.Context, itemID int64, categoryCode string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET category_code = ? WHERE id = ?`, categoryCode, itemID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrItemNotFound
	}
	return nil
}

// Related 返回与目标商品同类目的其他商品。
// 目标不存在或尚未分类时返回空集。
func (s *SQLite) Related(ctx context.Context, itemID int64, limit int) ([]*core.Item, error) {
	target, err := s.GetItem(ctx, itemID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if !target.Classified() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}
	return s.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN channels c ON c.id = i.channel_id
		 WHERE i.category_code = ? AND i.id != ? ORDER BY i.id DESC LIMIT ?`,
		target.CategoryCode, itemID, limit)
}

// LikedCategories 返回浏览者喜欢过的商品覆盖的类目码集合（去重，忽略未分类商品）。
func (s *SQLite) LikedCategories(ctx context.Context, viewerID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT i.category_code FROM likes l
		 JOIN items i ON i.id = l.item_id
		 WHERE l.user_id = ? AND i.category_code != ''`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// CreateUser 创建用户并附带一个默认频道，返回用户 ID。
func (s *SQLite) CreateUser(ctx context.Context, username string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
	if err != nil {
		return 0, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO channels (user_id, name) VALUES (?, ?)`, userID, username+"的频道"); err != nil {
		return 0, err
	}
	return userID, nil
}

// ChannelOf 返回用户的默认频道 ID；没有时新建一个。
func (s *SQLite) ChannelOf(ctx context.Context, userID int64) (int64, error) {
	var channelID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM channels WHERE user_id = ? ORDER BY id LIMIT 1`, userID).Scan(&channelID)
	if err == sql.ErrNoRows {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO channels (user_id, name) VALUES (?, ?)`, userID, "默认频道")
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, err
	}
	return channelID, nil
}

// AddLike 记录一条喜欢；重复喜欢同一商品时幂等。
func (s *SQLite) AddLike(ctx context.Context, userID, itemID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO likes (user_id, item_id) VALUES (?, ?)`, userID, itemID)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ core.Catalog = (*SQLite)(nil)
