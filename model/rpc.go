package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RPCModel 是通过 HTTP 调用外部打分服务的 PreferenceModel 实现。
// 离线侧把 XGBoost/Sklearn 等模型包成打分服务时用它接入。
type RPCModel struct {
	name     string
	Endpoint string // 例如 "http://localhost:8080/predict"
	Timeout  time.Duration
	Client   *http.Client
}

func NewRPCModel(name, endpoint string, timeout time.Duration) *RPCModel {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &RPCModel{
		name:     name,
		Endpoint: endpoint,
		Timeout:  timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (m *RPCModel) Name() string {
	return m.name
}

// Predict 调用远程打分服务（单个偏好分，内部调用批量接口）。
func (m *RPCModel) Predict(score float64) (float64, error) {
	probs, err := m.PredictBatch([]float64{score})
	if err != nil {
		return 0, err
	}
	if len(probs) == 0 {
		return 0, fmt.Errorf("empty response")
	}
	return probs[0], nil
}

// PredictBatch 调用远程打分服务进行批量预测。
// 请求格式（JSON）：
//
//	{"scores": [0.2, 5.2, ...]}
//
// 响应格式（JSON）：
//
//	{"probs": [0.1, 0.9, ...]}
func (m *RPCModel) PredictBatch(scores []float64) ([]float64, error) {
	if m.Client == nil {
		m.Client = &http.Client{Timeout: m.Timeout}
	}
	if len(scores) == 0 {
		return []float64{}, nil
	}

	jsonData, err := json.Marshal(map[string]any{"scores": scores})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("rpc error: status=%d, read body failed: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("rpc error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Probs []float64 `json:"probs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Probs) != len(scores) {
		return nil, fmt.Errorf("response probs count mismatch: expected %d, got %d", len(scores), len(result.Probs))
	}
	return result.Probs, nil
}

var _ PreferenceModel = (*RPCModel)(nil)
