// Package conv 提供类型转换、map/slice 转换等泛型工具，用于简化配置解析中的重复逻辑。
package conv

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt64 将 any 转为 int64。
func ToInt64(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case float64:
		return int64(val), true
	case float32:
		return int64(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SliceAnyToInt64 将 []any 转为 []int64，忽略无法转换的元素。
func SliceAnyToInt64(v any) []int64 {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, e := range raw {
		if n, ok := ToInt64(e); ok {
			out = append(out, n)
		}
	}
	return out
}

// SliceAnyToString 将 []any 转为 []string，忽略非字符串元素。
func SliceAnyToString(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := ToString(e); ok {
			out = append(out, s)
		}
	}
	return out
}

// ConfigGet 从 map 配置中按 key 取值，类型不匹配时返回默认值。
func ConfigGet[T any](config map[string]any, key string, def T) T {
	if config == nil {
		return def
	}
	if v, ok := config[key]; ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	return def
}

// ConfigGetInt64 从 map 配置中取整数（兼容 YAML/JSON 解析出的 int/float64）。
func ConfigGetInt64(config map[string]any, key string, def int64) int64 {
	if config == nil {
		return def
	}
	if v, ok := config[key]; ok {
		if n, ok := ToInt64(v); ok {
			return n
		}
	}
	return def
}

// ConfigGetFloat64 从 map 配置中取浮点数（兼容 int/int64）。
func ConfigGetFloat64(config map[string]any, key string, def float64) float64 {
	if config == nil {
		return def
	}
	if v, ok := config[key]; ok {
		if f, ok := ToFloat64(v); ok {
			return f
		}
	}
	return def
}
