package core

import "context"

// AffinitySource 是 (浏览者, 类目) 偏好分的领域接口。
//
// 偏好分由离线训练产出，进程内只读；缺失的 key 返回默认分 0 而不是错误。
// 传输层故障（如特征服务不可达）可以返回 error，排序引擎会把它当作
// 默认分处理，绝不让排序请求整体失败。
//
// 实现：
//   - affinity.Table：进程启动时从制品文件加载的内存表
//   - affinity.FeastSource：Feast 在线特征存储
type AffinitySource interface {
	// Name 返回来源名称（用于日志/观测）
	Name() string

	// Lookup 返回浏览者对类目的偏好分；无记录时返回 (0, nil)。
	Lookup(ctx context.Context, viewerID int64, categoryCode string) (float64, error)
}
