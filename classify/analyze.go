package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rushteam/marketrank/core"
)

// Verdict 是上架前的文本审核结论。
type Verdict struct {
	SuggestedChannel string `json:"suggested_channel"`
	Valid            bool   `json:"is_valid"`
	Reason           string `json:"reason"`
}

// fallbackVerdict 是审核服务故障时的安全结论：不放行、标注原因。
func fallbackVerdict(reason string) Verdict {
	return Verdict{SuggestedChannel: "unknown", Valid: false, Reason: reason}
}

// Analyzer 调用文本理解服务对新商品做上架审核：推荐频道 + 是否合规。
// 与 Classifier 共用同一个 Oracle 协作方，同样遵循"故障即降级"。
type Analyzer struct {
	Oracle  core.TextOracle
	Timeout time.Duration
}

// Analyze 返回审核结论；外部服务故障或回复不可解析时返回安全兜底结论。
func (a *Analyzer) Analyze(ctx context.Context, title, description string) Verdict {
	if a.Oracle == nil {
		return fallbackVerdict("moderation unavailable")
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"你是二手交易平台的管理员。只输出 JSON，不要输出其他文字：\n"+
			"{\"suggested_channel\": \"推荐频道\", \"is_valid\": true/false, \"reason\": \"理由\"}\n"+
			"商品: %s\n说明: %s\n",
		strings.TrimSpace(title), strings.TrimSpace(description))

	reply, err := a.Oracle.Complete(ctx, prompt)
	if err != nil {
		log.Printf("analyze oracle=%s error: %v", a.Oracle.Name(), err)
		return fallbackVerdict("moderation unavailable")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(CleanReply(reply)), &v); err != nil {
		log.Printf("analyze oracle=%s malformed reply: %v", a.Oracle.Name(), err)
		return fallbackVerdict("malformed moderation reply")
	}
	if v.SuggestedChannel == "" {
		v.SuggestedChannel = "unknown"
	}
	return v
}
