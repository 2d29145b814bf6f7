package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/marketrank/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则表达式解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：item.category == "books.comic" / item.status != "on_sale"
//   - 数值：item.price > 10000 / item.score >= 0.5
//   - 逻辑：item.category == "other" && item.price > 500
//   - 标签：label.recall_source.contains("hot")
//   - 上下文：rctx.viewer_id == item.owner_id
//
// 注意：访问不存在的 key 会报错，存在性判断请用 label.key != null。
type Eval struct {
	item *core.Item
	rctx *core.RankContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RankContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式视为恒真。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			// label.recall_source 直接取 value，便于书写规则
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]any{}
	if e.item != nil {
		item = map[string]any{
			"id":       e.item.ID,
			"owner_id": e.item.OwnerID,
			"title":    e.item.Title,
			"price":    e.item.Price,
			"status":   e.item.Status,
			"category": e.item.CategoryCode,
			"score":    e.item.Score,
			"labels":   labels,
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"viewer_id": e.rctx.ViewerID,
			"scene":     e.rctx.Scene,
			"sort_mode": string(e.rctx.SortMode),
			"params":    e.rctx.Params,
		}
	}

	return map[string]any{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
