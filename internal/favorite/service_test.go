package favorite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rohitprj/QuoteVault/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Quote{}, &models.Favorite{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuotes(t *testing.T, db *gorm.DB, n int) []models.Quote {
	t.Helper()
	quotes := make([]models.Quote, n)
	for i := range quotes {
		author := "Author"
		quotes[i] = models.Quote{Text: fmt.Sprintf("quote %d", i), Author: &author, Category: "Life"}
	}
	if err := db.Create(&quotes).Error; err != nil {
		t.Fatalf("seed quotes: %v", err)
	}
	return quotes
}

const testUser = "4e3f7a52-9f1c-4a2e-8f3d-1b2c3d4e5f60"

func TestToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	quotes := seedQuotes(t, db, 2)

	if err := svc.Toggle(ctx, testUser, quotes[0].ID, false); err != nil {
		t.Fatalf("Toggle add: %v", err)
	}
	on, err := svc.Status(ctx, testUser, quotes[0].ID)
	if err != nil || !on {
		t.Fatalf("expected favorited after add, got %v/%v", on, err)
	}

	if err := svc.Toggle(ctx, testUser, quotes[0].ID, true); err != nil {
		t.Fatalf("Toggle remove: %v", err)
	}
	on, err = svc.Status(ctx, testUser, quotes[0].ID)
	if err != nil || on {
		t.Fatalf("expected unfavorited after remove, got %v/%v", on, err)
	}

	// The untouched quote stays unfavorited throughout.
	on, err = svc.Status(ctx, testUser, quotes[1].ID)
	if err != nil || on {
		t.Fatalf("unrelated quote flipped: %v/%v", on, err)
	}
}

func TestToggleDuplicateInsertIsSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	quotes := seedQuotes(t, db, 1)

	// Two adds with stale client state, as when two devices race. The
	// second insert hits the primary key and is absorbed.
	if err := svc.Toggle(ctx, testUser, quotes[0].ID, false); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.Toggle(ctx, testUser, quotes[0].ID, false); err != nil {
		t.Fatalf("duplicate add should be success, got %v", err)
	}

	count, err := svc.Count(ctx, testUser)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single favorite row, got %d", count)
	}
}

func TestToggleRemoveMissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	quotes := seedQuotes(t, db, 1)

	if err := svc.Toggle(context.Background(), testUser, quotes[0].ID, true); err != nil {
		t.Fatalf("removing an absent favorite should be success, got %v", err)
	}
}

func TestListQuotesRecentFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	quotes := seedQuotes(t, db, 3)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, q := range quotes {
		fav := models.Favorite{UserID: testUser, QuoteID: q.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&fav).Error; err != nil {
			t.Fatalf("seed favorite: %v", err)
		}
	}

	page, err := svc.ListQuotes(ctx, testUser, 0, 10)
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(page.Quotes) != 3 || page.HasMore {
		t.Fatalf("expected 3 quotes without hasMore, got %d/%v", len(page.Quotes), page.HasMore)
	}
	// Last favorited comes first.
	if page.Quotes[0].ID != quotes[2].ID || page.Quotes[2].ID != quotes[0].ID {
		t.Fatalf("wrong order: %d, %d, %d", page.Quotes[0].ID, page.Quotes[1].ID, page.Quotes[2].ID)
	}

	page, err = svc.ListQuotes(ctx, testUser, 0, 3)
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if !page.HasMore {
		t.Error("full page should report hasMore")
	}
}

func TestListQuotesSkipsVanishedQuotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	quotes := seedQuotes(t, db, 2)

	for _, q := range quotes {
		if err := svc.Toggle(ctx, testUser, q.ID, false); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}
	if err := db.Delete(&models.Quote{}, quotes[0].ID).Error; err != nil {
		t.Fatalf("delete quote: %v", err)
	}

	page, err := svc.ListQuotes(ctx, testUser, 0, 10)
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(page.Quotes) != 1 || page.Quotes[0].ID != quotes[1].ID {
		t.Fatalf("expected only the surviving quote, got %+v", page.Quotes)
	}
}

func TestIDsAndCountScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	quotes := seedQuotes(t, db, 3)

	other := "ffffffff-0000-0000-0000-000000000000"
	for _, q := range quotes[:2] {
		if err := svc.Toggle(ctx, testUser, q.ID, false); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}
	if err := svc.Toggle(ctx, other, quotes[2].ID, false); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	ids, err := svc.IDs(ctx, testUser)
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	for _, id := range ids {
		if id == quotes[2].ID {
			t.Fatalf("foreign favorite leaked into ids: %v", ids)
		}
	}

	count, err := svc.Count(ctx, testUser)
	if err != nil || count != 2 {
		t.Fatalf("expected count 2, got %d/%v", count, err)
	}
}
