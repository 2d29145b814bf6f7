package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRPCModel_PredictBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Scores []float64 `json:"scores"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		probs := make([]float64, len(req.Scores))
		for i, s := range req.Scores {
			probs[i] = s / 10
		}
		json.NewEncoder(w).Encode(map[string]any{"probs": probs})
	}))
	defer srv.Close()

	m := NewRPCModel("remote", srv.URL, 0)
	probs, err := m.PredictBatch([]float64{2, 5})
	if err != nil {
		t.Fatalf("PredictBatch() error = %v", err)
	}
	if len(probs) != 2 || probs[0] != 0.2 || probs[1] != 0.5 {
		t.Errorf("PredictBatch() = %v", probs)
	}

	prob, err := m.Predict(5.0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if prob != 0.5 {
		t.Errorf("Predict() = %v, want 0.5", prob)
	}
}

func TestRPCModel_EmptyBatch(t *testing.T) {
	m := NewRPCModel("remote", "http://invalid.local", 0)
	probs, err := m.PredictBatch(nil)
	if err != nil {
		t.Fatalf("PredictBatch(nil) error = %v", err)
	}
	if len(probs) != 0 {
		t.Errorf("PredictBatch(nil) = %v, want empty", probs)
	}
}

func TestRPCModel_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "probs count mismatch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"probs": []float64{0.1, 0.2, 0.3}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			m := NewRPCModel("remote", srv.URL, 0)
			if _, err := m.PredictBatch([]float64{1}); err == nil {
				t.Fatal("PredictBatch() expected error")
			}
		})
	}
}
