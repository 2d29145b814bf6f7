package dsl

import (
	"testing"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pkg/utils"
)

func TestEval_Evaluate(t *testing.T) {
	item := core.NewItem(42)
	item.OwnerID = 7
	item.Title = "ONE PIECE vol.1"
	item.Price = 500
	item.Status = core.ItemStatusOnSale
	item.CategoryCode = "books.comic"
	item.Score = 0.9
	item.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})

	rctx := &core.RankContext{ViewerID: 7, Scene: "feed", SortMode: core.SortModeRecommend}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "empty expression is true", expr: "", want: true},
		{name: "category equality", expr: `item.category == "books.comic"`, want: true},
		{name: "price comparison", expr: `item.price > 100 && item.price < 1000`, want: true},
		{name: "score threshold", expr: `item.score >= 0.5`, want: true},
		{name: "label value access", expr: `label.recall_source.contains("hot")`, want: true},
		{name: "viewer owns the item", expr: `rctx.viewer_id == item.owner_id`, want: true},
		{name: "sort mode string", expr: `rctx.sort_mode == "recommend"`, want: true},
		{name: "false branch", expr: `item.status != "on_sale"`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(item, rctx).Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	item := core.NewItem(1)

	if _, err := NewEval(item, nil).Evaluate(`item.price >`); err == nil {
		t.Error("Evaluate() expected compile error")
	}
	if _, err := NewEval(item, nil).Evaluate(`item.title`); err == nil {
		t.Error("Evaluate() expected error for non-boolean result")
	}
}

func TestEval_NilItem(t *testing.T) {
	got, err := NewEval(nil, nil).Evaluate(`1 == 1`)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !got {
		t.Error("Evaluate() = false, want true")
	}
}
