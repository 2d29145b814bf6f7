package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LRModel 实现了单特征逻辑回归 (Logistic Regression) 模型。
// 训练侧以偏好分为唯一特征、是否购买为标签拟合，这里只做推理。
//
// 预测原理：
// 1. 线性变换: z = Bias + Weight * score
// 2. Sigmoid 变换: P = 1 / (1 + exp(-z))
//
// 最终输出值 P 代表购买概率，范围在 (0, 1) 之间。
type LRModel struct {
	Bias   float64 // 偏置项 (Bias / Intercept)
	Weight float64 // 偏好分的权重 (Coefficient)
}

func LoadLRModel(path string) (*LRModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseLRModel(data)
	if err != nil {
		return nil, fmt.Errorf("parse lr model %s: %w", path, err)
	}
	return m, nil
}

// ParseLRModel 从 JSON 字节解析模型参数：{"bias": -2.1, "weight": 0.8}。
func ParseLRModel(data []byte) (*LRModel, error) {
	var raw struct {
		Bias   float64 `json:"bias"`
		Weight float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &LRModel{Bias: raw.Bias, Weight: raw.Weight}, nil
}

func (m *LRModel) Name() string { return "lr" }

func (m *LRModel) Predict(score float64) (float64, error) {
	z := m.Bias + m.Weight*score
	return 1 / (1 + math.Exp(-z)), nil
}
