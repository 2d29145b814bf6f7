package affinity

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	"github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/marketrank/core"
)

// FeastSource 是基于 Feast 在线特征存储的偏好分来源。
//
// 与内存 Table 的分工：
//   - Table：开发/演示环境，制品文件随进程发布
//   - FeastSource：生产环境，偏好分由离线训练物化到 Feast 在线存储，
//     更新无需重启排序进程
//
// 实体为 (viewer_id, category_code)，特征为一个 double 类型的偏好分。
// 特征缺失或服务不可达时由排序引擎按默认分 0 降级，这里只负责透传错误。
type FeastSource struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// Feature 偏好分特征的全名，例如 "viewer_category_prefs:score"
	Feature string
}

// NewFeastSource 创建 Feast 偏好分来源。
//
// 参数：
//   - host/port: Feast Feature Server 的 gRPC 地址（port 为 0 时用默认 6565）
//   - project: 项目名称
//   - feature: 偏好分特征全名
func NewFeastSource(host string, port int, project, feature string) (*FeastSource, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast grpc client: %w", err)
	}
	return &FeastSource{
		client:  client,
		Project: project,
		Feature: feature,
	}, nil
}

func (s *FeastSource) Name() string { return "feast" }

// Lookup 从 Feast 在线存储读取偏好分；特征缺失时返回 (0, nil)。
func (s *FeastSource) Lookup(ctx context.Context, viewerID int64, categoryCode string) (float64, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{s.Feature},
		Entities: []feastsdk.Row{
			{
				"viewer_id":     feastsdk.Int64Val(viewerID),
				"category_code": feastsdk.StrVal(categoryCode),
			},
		},
		Project: s.Project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return 0, nil
	}
	val, ok := rows[0][s.Feature]
	if !ok || val == nil {
		return 0, nil
	}
	return valueToFloat64(val), nil
}

func (s *FeastSource) Close() error {
	s.client = nil
	return nil
}

// valueToFloat64 把 Feast 的 proto Value 转为 float64，不支持的类型按 0 处理。
func valueToFloat64(v *types.Value) float64 {
	switch val := v.Val.(type) {
	case *types.Value_DoubleVal:
		return val.DoubleVal
	case *types.Value_FloatVal:
		return float64(val.FloatVal)
	case *types.Value_Int64Val:
		return float64(val.Int64Val)
	case *types.Value_Int32Val:
		return float64(val.Int32Val)
	default:
		return 0
	}
}

var _ core.AffinitySource = (*FeastSource)(nil)
