package affinity

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rushteam/marketrank/model"
)

// Bundle 是预训练偏好制品：偏好模型 + 偏好分表，一个文件整体发布。
// 新一轮训练产出新制品并重启进程生效，运行期不支持热更新。
type Bundle struct {
	Model *model.LRModel
	Prefs *Table
}

// LoadBundle 从 JSON 制品文件加载偏好模型与偏好分表。
//
// 制品格式：
//
//	{
//	  "model": {"bias": -2.0, "weight": 0.9},
//	  "prefs": [{"viewer_id": 1, "category_code": "books.comic", "score": 0.2}, ...]
//	}
//
// 制品缺失或损坏时返回错误；调用方应记一次日志并以"模型不可用"
// 状态继续启动，排序随之降级为最新优先，绝不因此拒绝启动。
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	var raw struct {
		Model json.RawMessage `json:"model"`
		Prefs []Record        `json:"prefs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bundle %s: %w", path, err)
	}
	if len(raw.Model) == 0 {
		return nil, fmt.Errorf("parse bundle %s: missing model", path)
	}

	m, err := model.ParseLRModel(raw.Model)
	if err != nil {
		return nil, fmt.Errorf("parse bundle %s: %w", path, err)
	}

	return &Bundle{
		Model: m,
		Prefs: NewTable(raw.Prefs),
	}, nil
}
