// Package classify 把自由文本的商品标题归一到封闭类目体系。
//
// 分类依赖外部文本理解服务，回复是无 schema 保证的自由文本，因此
// 这里的全部价值在确定性的安全网：清洗 → 精确匹配 → 包含匹配 → 兜底。
// 分类是咨询性数据而非关键路径数据，任何故障都降级为兜底类目码，
// 绝不把错误抛给调用方。
package classify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rushteam/marketrank/core"
)

// DefaultTimeout 是单次分类调用的默认超时。超时视为服务故障，走兜底。
const DefaultTimeout = 10 * time.Second

// Classifier 将商品标题映射到类目体系中的唯一类目码。
type Classifier struct {
	Oracle   core.TextOracle
	Taxonomy *core.Taxonomy

	// Timeout 单次调用超时；0 表示使用 DefaultTimeout。
	Timeout time.Duration
}

// Classify 返回类目体系内的一个类目码（含兜底码），永不返回任意字符串。
//
// 匹配策略按序尝试：
//  1. 清洗后的回复与某类目码完全相等 → 采纳
//  2. 按类目定义顺序扫描，取第一个作为子串出现在回复中的类目码 → 采纳
//  3. 否则返回兜底码
//
// 注意：外部服务是生成式的，同输入不保证同输出；测试必须注入脚本化 Oracle。
func (c *Classifier) Classify(ctx context.Context, title string) string {
	if c.Taxonomy == nil || c.Taxonomy.Len() == 0 {
		// 空类目体系：不发起外部调用，直接兜底
		return core.FallbackUnknown
	}
	fallback := c.Taxonomy.Fallback()
	if c.Oracle == nil {
		return fallback
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := c.Oracle.Complete(ctx, c.buildPrompt(title))
	if err != nil {
		log.Printf("classify oracle=%s error (fallback to %s): %v", c.Oracle.Name(), fallback, err)
		return fallback
	}

	reply = CleanReply(reply)
	if c.Taxonomy.Has(reply) {
		return reply
	}
	// 包含匹配：回复夹带多余文字时按定义顺序取第一个命中，保证确定性
	for _, code := range c.Taxonomy.Codes() {
		if strings.Contains(reply, code) {
			return code
		}
	}
	return fallback
}

// buildPrompt 构造单轮指令：商品标题 + 完整类目码列表，要求只回类目码本身。
func (c *Classifier) buildPrompt(title string) string {
	var b strings.Builder
	b.WriteString("从下面的类目列表中选出与该商品最接近的一个类目码，只返回类目码本身，不要输出任何其他文字。\n")
	fmt.Fprintf(&b, "商品: %s\n", strings.TrimSpace(title))
	fmt.Fprintf(&b, "类目列表: %s\n", strings.Join(c.Taxonomy.Codes(), ", "))
	return b.String()
}

// CleanReply 清洗外部服务回复：去掉两侧空白、markdown 代码块围栏与反引号。
func CleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
		// 围栏可能带语言标注（```text），去掉首行
		if idx := strings.Index(reply, "\n"); idx >= 0 && len(strings.Fields(reply[:idx])) <= 1 {
			reply = reply[idx+1:]
		}
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	}
	reply = strings.Trim(reply, "`")
	return strings.TrimSpace(reply)
}
