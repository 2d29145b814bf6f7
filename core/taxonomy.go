package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// 兜底类目码。类目体系中若存在 FallbackOther 则优先使用它，
// 否则使用 FallbackUnknown（不要求在体系中注册）。
const (
	FallbackUnknown = "unknown"
	FallbackOther   = "other"
)

// Taxonomy 是封闭的类目主数据：有序的类目码列表 + 展示名。
// 类目码只增不改名，保证已落库的商品数据永远可解释；
// 码表顺序参与分类兜底匹配（包含匹配按此顺序取第一个命中）。
//
// 加载后只读，无锁并发安全。
type Taxonomy struct {
	codes  []string
	labels map[string]string
}

// NewTaxonomy 创建空的类目体系。
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{labels: make(map[string]string)}
}

// Add 追加一个类目码。重复追加同名码时仅更新展示名，不改变顺序。
func (t *Taxonomy) Add(code, label string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	if label == "" {
		label = code
	}
	if _, ok := t.labels[code]; !ok {
		t.codes = append(t.codes, code)
	}
	t.labels[code] = label
}

// Has 判断类目码是否在体系内（O(1)）。
func (t *Taxonomy) Has(code string) bool {
	_, ok := t.labels[code]
	return ok
}

// Label 返回类目码的展示名；不存在时返回空串。
func (t *Taxonomy) Label(code string) string {
	return t.labels[code]
}

// Codes 按定义顺序返回全部类目码（副本，调用方可自由修改）。
func (t *Taxonomy) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Len 返回类目数量。
func (t *Taxonomy) Len() int {
	return len(t.codes)
}

// Fallback 返回兜底类目码：体系内存在 "other" 时用它，否则用 "unknown"。
func (t *Taxonomy) Fallback() string {
	if t.Has(FallbackOther) {
		return FallbackOther
	}
	return FallbackUnknown
}

// LoadTaxonomy 从文本文件加载类目主数据。
// 每行一条：`code` 或 `code<TAB>label`；空行与 # 开头的行忽略。
func LoadTaxonomy(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy: %w", err)
	}
	defer f.Close()

	t := NewTaxonomy()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, label, _ := strings.Cut(line, "\t")
		t.Add(code, strings.TrimSpace(label))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return t, nil
}
