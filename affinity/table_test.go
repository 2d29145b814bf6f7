package affinity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTable_Lookup(t *testing.T) {
	table := NewTable([]Record{
		{ViewerID: 1, CategoryCode: "books.comic", Score: 0.2},
		{ViewerID: 1, CategoryCode: "fashion.shoes", Score: 0.8},
		{ViewerID: 2, CategoryCode: "books.comic", Score: 0.5},
	})

	tests := []struct {
		name     string
		viewerID int64
		code     string
		want     float64
	}{
		{name: "hit", viewerID: 1, code: "books.comic", want: 0.2},
		{name: "per viewer scores", viewerID: 2, code: "books.comic", want: 0.5},
		{name: "unknown category defaults to zero", viewerID: 1, code: "toys", want: 0},
		{name: "unknown viewer defaults to zero", viewerID: 9, code: "books.comic", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Lookup(context.Background(), tt.viewerID, tt.code)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTable_DuplicateLastWriteWins(t *testing.T) {
	table := NewTable([]Record{
		{ViewerID: 1, CategoryCode: "books.comic", Score: 0.2},
		{ViewerID: 1, CategoryCode: "books.comic", Score: 0.9},
	})

	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	got, _ := table.Lookup(context.Background(), 1, "books.comic")
	if got != 0.9 {
		t.Errorf("Lookup() = %v, want 0.9 (last write wins)", got)
	}
}

func TestLoadBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	content := `{
		"model": {"bias": -2.0, "weight": 0.9},
		"prefs": [
			{"viewer_id": 1, "category_code": "books.comic", "score": 0.2}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}
	if b.Model.Bias != -2.0 || b.Model.Weight != 0.9 {
		t.Errorf("model params = %+v, want bias -2.0 weight 0.9", b.Model)
	}
	if b.Prefs.Len() != 1 {
		t.Errorf("prefs Len() = %d, want 1", b.Prefs.Len())
	}
	score, _ := b.Prefs.Lookup(context.Background(), 1, "books.comic")
	if score != 0.2 {
		t.Errorf("prefs score = %v, want 0.2", score)
	}
}

func TestLoadBundle_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "corrupt json", content: `{"model": {`},
		{name: "missing model", content: `{"prefs": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadBundle(path); err == nil {
				t.Fatal("LoadBundle() expected error")
			}
		})
	}

	if _, err := LoadBundle(filepath.Join(dir, "absent.json")); err == nil {
		t.Fatal("LoadBundle() expected error for missing file")
	}
}
