package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/marketrank/core"
)

// scriptedOracle returns a fixed reply and counts invocations.
type scriptedOracle struct {
	reply string
	err   error
	calls int
}

func (o *scriptedOracle) Name() string { return "scripted" }

func (o *scriptedOracle) Complete(_ context.Context, _ string) (string, error) {
	o.calls++
	return o.reply, o.err
}

func testTaxonomy(codes ...string) *core.Taxonomy {
	tax := core.NewTaxonomy()
	for _, c := range codes {
		tax.Add(c, "")
	}
	return tax
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		reply string
		err   error
		want  string
	}{
		{
			name:  "exact match",
			codes: []string{"books.comic", "other"},
			reply: "books.comic",
			want:  "books.comic",
		},
		{
			name:  "exact match with surrounding whitespace",
			codes: []string{"books.comic", "other"},
			reply: "  books.comic\n",
			want:  "books.comic",
		},
		{
			name:  "containment match with extra words",
			codes: []string{"books.comic", "other"},
			reply: "books.comic is best",
			want:  "books.comic",
		},
		{
			name:  "containment picks first code in taxonomy order",
			codes: []string{"books", "books.comic"},
			reply: "I would say books.comic",
			want:  "books", // "books" is a substring and comes first
		},
		{
			name:  "markdown fenced reply",
			codes: []string{"books.comic", "other"},
			reply: "```\nbooks.comic\n```",
			want:  "books.comic",
		},
		{
			name:  "backtick wrapped reply",
			codes: []string{"books.comic", "other"},
			reply: "`books.comic`",
			want:  "books.comic",
		},
		{
			name:  "garbage reply falls back to other",
			codes: []string{"books.comic", "other"},
			reply: "N/A",
			want:  "other",
		},
		{
			name:  "garbage reply without other sentinel",
			codes: []string{"books.comic"},
			reply: "N/A",
			want:  "unknown",
		},
		{
			name:  "oracle error falls back",
			codes: []string{"books.comic", "other"},
			err:   errors.New("connection refused"),
			want:  "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &scriptedOracle{reply: tt.reply, err: tt.err}
			c := &Classifier{Oracle: oracle, Taxonomy: testTaxonomy(tt.codes...)}

			got := c.Classify(context.Background(), "ONE PIECE vol.1")
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
			if oracle.calls != 1 {
				t.Errorf("oracle calls = %d, want 1", oracle.calls)
			}
		})
	}
}

func TestClassifier_AlwaysReturnsTaxonomyMember(t *testing.T) {
	tax := testTaxonomy("books.comic", "fashion.shoes", "other")
	replies := []string{"books.comic", "something unrelated", "", "BOOKS.COMIC", "fashion.shoes maybe?"}

	for _, reply := range replies {
		c := &Classifier{Oracle: &scriptedOracle{reply: reply}, Taxonomy: tax}
		got := c.Classify(context.Background(), "title")
		if !tax.Has(got) {
			t.Errorf("Classify() with reply %q returned %q, not a taxonomy member", reply, got)
		}
	}
}

func TestClassifier_EmptyTaxonomySkipsOracle(t *testing.T) {
	oracle := &scriptedOracle{reply: "whatever"}
	c := &Classifier{Oracle: oracle, Taxonomy: core.NewTaxonomy()}

	if got := c.Classify(context.Background(), "title"); got != core.FallbackUnknown {
		t.Errorf("Classify() = %q, want %q", got, core.FallbackUnknown)
	}
	if oracle.calls != 0 {
		t.Errorf("oracle calls = %d, want 0 (empty taxonomy must short-circuit)", oracle.calls)
	}
}

func TestClassifier_NilOracle(t *testing.T) {
	c := &Classifier{Taxonomy: testTaxonomy("books.comic", "other")}
	if got := c.Classify(context.Background(), "title"); got != "other" {
		t.Errorf("Classify() = %q, want other", got)
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"books.comic", "books.comic"},
		{"  books.comic  ", "books.comic"},
		{"```\nbooks.comic\n```", "books.comic"},
		{"```text\nbooks.comic\n```", "books.comic"},
		{"`books.comic`", "books.comic"},
	}
	for _, tt := range tests {
		if got := CleanReply(tt.in); got != tt.want {
			t.Errorf("CleanReply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
