package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/marketrank/core"
	"github.com/rushteam/marketrank/pkg/utils"
)

// stubSource is a scripted recall source.
type stubSource struct {
	name  string
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, _ *core.RankContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func labeledItem(id int64, source string) *core.Item {
	it := core.NewItem(id)
	it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
	return it
}

func TestFanout_MergesInRegistrationOrder(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "a", items: []*core.Item{core.NewItem(1), core.NewItem(2)}},
		&stubSource{name: "b", items: []*core.Item{core.NewItem(3)}},
	}}

	out, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []int64{1, 2, 3}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, id)
		}
	}
}

func TestFanout_SourceErrorIsIsolated(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "broken", err: errors.New("backend down")},
		&stubSource{name: "ok", items: []*core.Item{core.NewItem(1)}},
	}}

	out, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("out = %v, want only the healthy source's item", out)
	}
}

func TestFanout_TimeoutDropsSlowSource(t *testing.T) {
	n := &Fanout{
		Timeout: 20 * time.Millisecond,
		Sources: []Source{
			&stubSource{name: "slow", delay: 200 * time.Millisecond, items: []*core.Item{core.NewItem(9)}},
			&stubSource{name: "fast", items: []*core.Item{core.NewItem(1)}},
		},
	}

	out, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("out = %v, want only the fast source's item", out)
	}
}

func TestFanout_DedupKeepsFirstAndMergesLabels(t *testing.T) {
	n := &Fanout{
		Dedup: true,
		Sources: []Source{
			&stubSource{name: "a", items: []*core.Item{labeledItem(1, "catalog")}},
			&stubSource{name: "b", items: []*core.Item{labeledItem(1, "hot"), core.NewItem(2)}},
		},
	}

	out, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 after dedup", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", out[0].ID, out[1].ID)
	}
	// duplicate's label merged into the surviving instance
	if l, ok := out[0].Labels["recall_source"]; !ok || l.Value != "catalog|hot" {
		t.Errorf("recall_source label = %+v, want merged catalog|hot", l)
	}
}

func TestFanout_NoSources(t *testing.T) {
	n := &Fanout{}
	out, err := n.Process(context.Background(), nil, nil)
	if err != nil || out != nil {
		t.Errorf("Process() = %v, %v, want nil, nil", out, err)
	}
}
