package affinity

import (
	"context"
	"log"

	"github.com/rushteam/marketrank/core"
)

// Record 是离线训练产出的一条偏好分记录。
type Record struct {
	ViewerID     int64   `json:"viewer_id"`
	CategoryCode string  `json:"category_code"`
	Score        float64 `json:"score"`
}

type key struct {
	viewerID int64
	code     string
}

// Table 是内存实现的偏好分表：进程启动时一次性加载，此后只读。
//
// 不变式：每个 (viewer, category) 至多一条记录。制品中出现重复 key 时
// 按后写覆盖处理，并记一条数据质量告警日志，绝不因此导致加载失败。
// 加载完成后无共享可变状态，并发读取无需加锁。
type Table struct {
	name   string
	scores map[key]float64
}

// NewTable 从记录集构建偏好分表。
func NewTable(records []Record) *Table {
	scores := make(map[key]float64, len(records))
	for _, r := range records {
		k := key{viewerID: r.ViewerID, code: r.CategoryCode}
		if old, ok := scores[k]; ok {
			log.Printf("affinity table duplicate key viewer=%d category=%s old=%v new=%v (last write wins)",
				r.ViewerID, r.CategoryCode, old, r.Score)
		}
		scores[k] = r.Score
	}
	return &Table{name: "table", scores: scores}
}

func (t *Table) Name() string { return t.name }

// Lookup 返回偏好分；无记录时返回默认分 0。
func (t *Table) Lookup(_ context.Context, viewerID int64, categoryCode string) (float64, error) {
	return t.scores[key{viewerID: viewerID, code: categoryCode}], nil
}

// Len 返回记录条数（去重后）。
func (t *Table) Len() int {
	return len(t.scores)
}

var _ core.AffinitySource = (*Table)(nil)
