// Package oracle 提供 core.TextOracle 的具体实现。
package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/rushteam/marketrank/core"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// Anthropic 是基于 Anthropic Messages API 的文本理解服务。
// 单轮、纯文本、有限长度回复；超时与取消经由 ctx 透传。
type Anthropic struct {
	client anthropic.Client

	// Model 模型名；为空时使用 defaultAnthropicModel。
	Model string

	// MaxTokens 回复长度上限；分类/审核只需要很短的回复，默认 256。
	MaxTokens int64
}

// NewAnthropic 创建 Anthropic 文本理解客户端。
func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &Anthropic{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		Model:     model,
		MaxTokens: 256,
	}
}

func (o *Anthropic) Name() string { return "anthropic" }

// Complete 发送单轮指令并返回第一个文本块。
func (o *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}

	message, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(o.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", core.ErrOracleUnavailable
}

var _ core.TextOracle = (*Anthropic)(nil)
