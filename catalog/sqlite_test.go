package catalog

import (
	"context"
	"testing"

	"github.com/rushteam/marketrank/core"
)

func newTestCatalog(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *SQLite, username string) (userID, channelID int64) {
	t.Helper()
	ctx := context.Background()
	userID, err := s.CreateUser(ctx, username)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	channelID, err = s.ChannelOf(ctx, userID)
	if err != nil {
		t.Fatalf("ChannelOf() error = %v", err)
	}
	return userID, channelID
}

func seedItem(t *testing.T, s *SQLite, channelID int64, title, category string) int64 {
	t.Helper()
	it := core.NewItem(0)
	it.ChannelID = channelID
	it.Title = title
	it.CategoryCode = category
	id, err := s.CreateItem(context.Background(), it)
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	return id
}

func TestSQLite_CreateAndGetItem(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	userID, channelID := seedUser(t, s, "alice")

	id := seedItem(t, s, channelID, "ONE PIECE vol.1", "books.comic")

	it, err := s.GetItem(ctx, id)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if it.Title != "ONE PIECE vol.1" {
		t.Errorf("Title = %q", it.Title)
	}
	if it.OwnerID != userID {
		t.Errorf("OwnerID = %d, want %d", it.OwnerID, userID)
	}
	if it.Status != core.ItemStatusOnSale {
		t.Errorf("Status = %q, want default on_sale", it.Status)
	}
	if it.CategoryCode != "books.comic" {
		t.Errorf("CategoryCode = %q", it.CategoryCode)
	}

	if _, err := s.GetItem(ctx, 9999); !core.IsNotFound(err) {
		t.Errorf("GetItem(absent) error = %v, want not found", err)
	}
}

func TestSQLite_ListItemsNewestFirst(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	_, channelID := seedUser(t, s, "alice")

	first := seedItem(t, s, channelID, "first", "")
	second := seedItem(t, s, channelID, "second", "")

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != second || items[1].ID != first {
		t.Errorf("order = [%d %d], want [%d %d]", items[0].ID, items[1].ID, second, first)
	}
}

func TestSQLite_ItemsByOwner(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	aliceID, aliceChannel := seedUser(t, s, "alice")
	_, bobChannel := seedUser(t, s, "bob")

	seedItem(t, s, aliceChannel, "alice item", "")
	seedItem(t, s, bobChannel, "bob item", "")

	items, err := s.ItemsByOwner(ctx, aliceID)
	if err != nil {
		t.Fatalf("ItemsByOwner() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "alice item" {
		t.Errorf("ItemsByOwner() = %d items, want only alice's", len(items))
	}
}

func TestSQLite_AssignCategory(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	_, channelID := seedUser(t, s, "alice")
	id := seedItem(t, s, channelID, "item", "")

	if err := s.AssignCategory(ctx, id, "books.comic"); err != nil {
		t.Fatalf("AssignCategory() error = %v", err)
	}
	it, _ := s.GetItem(ctx, id)
	if it.CategoryCode != "books.comic" {
		t.Errorf("CategoryCode = %q, want books.comic", it.CategoryCode)
	}

	if err := s.AssignCategory(ctx, 9999, "books.comic"); !core.IsNotFound(err) {
		t.Errorf("AssignCategory(absent) error = %v, want not found", err)
	}
}

func TestSQLite_Related(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	_, channelID := seedUser(t, s, "alice")

	target := seedItem(t, s, channelID, "target", "books.comic")
	same1 := seedItem(t, s, channelID, "same1", "books.comic")
	same2 := seedItem(t, s, channelID, "same2", "books.comic")
	seedItem(t, s, channelID, "unrelated", "fashion.shoes")
	unclassified := seedItem(t, s, channelID, "bare", "")

	related, err := s.Related(ctx, target, 3)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("len = %d, want 2", len(related))
	}
	// newest first, target itself excluded
	if related[0].ID != same2 || related[1].ID != same1 {
		t.Errorf("order = [%d %d], want [%d %d]", related[0].ID, related[1].ID, same2, same1)
	}

	// unclassified target: empty set, not an error
	if got, err := s.Related(ctx, unclassified, 3); err != nil || len(got) != 0 {
		t.Errorf("Related(unclassified) = %v, %v, want empty", got, err)
	}

	// missing target: empty set, not an error
	if got, err := s.Related(ctx, 9999, 3); err != nil || len(got) != 0 {
		t.Errorf("Related(absent) = %v, %v, want empty", got, err)
	}
}

func TestSQLite_LikedCategories(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()
	aliceID, channelID := seedUser(t, s, "alice")

	comic1 := seedItem(t, s, channelID, "comic1", "books.comic")
	comic2 := seedItem(t, s, channelID, "comic2", "books.comic")
	shoes := seedItem(t, s, channelID, "shoes", "fashion.shoes")
	bare := seedItem(t, s, channelID, "bare", "")

	for _, id := range []int64{comic1, comic2, shoes, bare} {
		if err := s.AddLike(ctx, aliceID, id); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}
	}
	// liking the same item twice is idempotent
	if err := s.AddLike(ctx, aliceID, comic1); err != nil {
		t.Fatalf("AddLike() repeat error = %v", err)
	}

	codes, err := s.LikedCategories(ctx, aliceID)
	if err != nil {
		t.Fatalf("LikedCategories() error = %v", err)
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	// deduplicated, unclassified likes excluded
	if len(codes) != 2 || !set["books.comic"] || !set["fashion.shoes"] {
		t.Errorf("LikedCategories() = %v, want [books.comic fashion.shoes]", codes)
	}

	// viewer with no likes
	if codes, err := s.LikedCategories(ctx, 9999); err != nil || len(codes) != 0 {
		t.Errorf("LikedCategories(no likes) = %v, %v, want empty", codes, err)
	}
}

func TestSQLite_ChannelOfCreatesDefault(t *testing.T) {
	s := newTestCatalog(t)
	ctx := context.Background()

	// user row without any channel
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES ('orphan')`)
	if err != nil {
		t.Fatal(err)
	}
	userID, _ := res.LastInsertId()

	channelID, err := s.ChannelOf(ctx, userID)
	if err != nil {
		t.Fatalf("ChannelOf() error = %v", err)
	}
	if channelID == 0 {
		t.Fatal("ChannelOf() = 0, want created channel")
	}

	again, err := s.ChannelOf(ctx, userID)
	if err != nil {
		t.Fatalf("ChannelOf() second call error = %v", err)
	}
	if again != channelID {
		t.Errorf("ChannelOf() = %d on second call, want %d", again, channelID)
	}
}
