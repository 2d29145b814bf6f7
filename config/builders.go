package config

import (
	"fmt"
	"log"
	"time"

	"github.com/rushteam/marketrank/affinity"
	"github.com/rushteam/marketrank/filter"
	"github.com/rushteam/marketrank/pipeline"
	"github.com/rushteam/marketrank/pkg/conv"
	"github.com/rushteam/marketrank/rank"
	"github.com/rushteam/marketrank/recall"
	"github.com/rushteam/marketrank/rerank"
)

// 内置 Node 的配置构建器。
// 需要运行期依赖（Catalog、Store、Oracle）的 Node 不在此注册，
// 由调用方直接构造后塞进 Pipeline。
func init() {
	Register("recall.hot", buildHotNode)
	Register("recall.fanout", buildFanoutNode)
	Register("filter", buildFilterNode)
	Register("rank.engine", buildEngineNode)
	Register("rerank.topn", buildTopNNode)
}

func buildHotNode(config map[string]any) (pipeline.Node, error) {
	return &recall.Hot{
		Key:  conv.ConfigGet[string](config, "key", ""),
		IDs:  conv.SliceAnyToInt64(config["ids"]),
		TopK: conv.ConfigGetInt64(config, "top_k", 0),
	}, nil
}

func buildFanoutNode(config map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := config["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet[string](sourceMap, "type", ""); sourceType {
		case "hot":
			sources = append(sources, &recall.Hot{
				Key:  conv.ConfigGet[string](sourceMap, "key", ""),
				IDs:  conv.SliceAnyToInt64(sourceMap["ids"]),
				TopK: conv.ConfigGetInt64(sourceMap, "top_k", 0),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet[bool](config, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(config, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(config, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildFilterNode(config map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet[string](filterMap, "type", ""); filterType {
		case "status":
			filters = append(filters, filter.NewStatusFilter(conv.SliceAnyToString(filterMap["allowed"])...))
		case "owner":
			filters = append(filters, &filter.OwnerFilter{})
		case "rule":
			filters = append(filters, filter.NewRuleFilter(conv.ConfigGet[string](filterMap, "expr", "")))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.Node{Filters: filters}, nil
}

// buildEngineNode 从偏好制品文件构建排序节点。
// 制品加载失败时按规约降级：节点照常创建，所有请求走最新优先排序。
func buildEngineNode(config map[string]any) (pipeline.Node, error) {
	cfg := rank.Config{
		LikeBoost:    conv.ConfigGetFloat64(config, "like_boost", 0),
		BaseViewerID: conv.ConfigGetInt64(config, "base_viewer_id", 0),
	}

	bundlePath := conv.ConfigGet[string](config, "bundle", "")
	if bundlePath == "" {
		return nil, fmt.Errorf("bundle not found")
	}

	bundle, err := affinity.LoadBundle(bundlePath)
	if err != nil {
		log.Printf("rank.engine bundle %s unavailable (degraded to %q ordering): %v", bundlePath, "new", err)
		return &rank.EngineNode{Engine: rank.NewEngine(nil, nil, nil, cfg)}, nil
	}
	return &rank.EngineNode{Engine: rank.NewEngine(bundle.Prefs, bundle.Model, nil, cfg)}, nil
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(config, "n", 0)
	return &rerank.TopNNode{N: int(n)}, nil
}
