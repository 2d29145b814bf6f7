package core

import "context"

// TextOracle 是外部文本理解服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（oracle）实现
//   - 回复是无任何 schema 保证的自由文本，调用方必须防御式解析
//   - 生成式服务不保证同输入同输出，测试必须注入脚本化实现
//
// 实现：
//   - oracle.Anthropic 实现此接口
//   - 其他文本生成服务（OpenAI、本地模型等）也可以实现此接口
type TextOracle interface {
	// Name 返回服务名称（用于日志/观测）
	Name() string

	// Complete 发送一段自然语言指令，返回自由文本补全。
	// 阻塞调用，调用方通过 ctx 控制超时。
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrOracleUnavailable 表示文本理解服务不可达或回复无法解析。
var ErrOracleUnavailable = NewDomainError(ModuleOracle, ErrorCodeUnavailable, "oracle: service unavailable")
