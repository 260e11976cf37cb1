package quote

import (
	"context"
	"errors"
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
	if err := db.AutoMigrate(&models.Quote{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuote(t *testing.T, db *gorm.DB, text, author, category string) models.Quote {
	t.Helper()
	q := models.Quote{Text: text, Author: &author, Category: category}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return q
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedQuote(t, db, fmt.Sprintf("wisdom %d", i), "Author", "Wisdom")
	}
	for i := 0; i < 5; i++ {
		seedQuote(t, db, fmt.Sprintf("love %d", i), "Author", "Love")
	}

	page, err := svc.List(ctx, 0, 20, "Wisdom")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Quotes) != 20 {
		t.Fatalf("expected 20 quotes, got %d", len(page.Quotes))
	}
	if !page.HasMore {
		t.Error("expected hasMore=true on full page")
	}

	page, err = svc.List(ctx, 20, 20, "Wisdom")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Quotes) != 5 {
		t.Fatalf("expected 5 quotes, got %d", len(page.Quotes))
	}
	if page.HasMore {
		t.Error("expected hasMore=false on short page")
	}

	for _, q := range page.Quotes {
		if q.Category != "Wisdom" {
			t.Errorf("category filter leaked %q", q.Category)
		}
	}
}

func TestListAscendingOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	for i := 0; i < 5; i++ {
		seedQuote(t, db, fmt.Sprintf("q%d", i), "A", "Life")
	}

	page, err := svc.List(context.Background(), 0, 10, models.AllCategories)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(page.Quotes); i++ {
		if page.Quotes[i].ID <= page.Quotes[i-1].ID {
			t.Fatalf("quotes out of order: %d after %d", page.Quotes[i].ID, page.Quotes[i-1].ID)
		}
	}
}

func TestListAllSentinelSkipsFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedQuote(t, db, "a", "A", "Wisdom")
	seedQuote(t, db, "b", "B", "Love")

	page, err := svc.List(context.Background(), 0, 10, models.AllCategories)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Quotes) != 2 {
		t.Fatalf("expected both quotes with All sentinel, got %d", len(page.Quotes))
	}
}

func TestSearchMatchesTextAndAuthorCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedQuote(t, db, "The journey of a thousand miles", "Lao Tzu", "Motivation")
	seedQuote(t, db, "Stay hungry, stay foolish", "Steve Jobs", "Motivation")
	seedQuote(t, db, "Unrelated", "Nobody", "Life")

	page, err := svc.Search(ctx, "JOURNEY", 0, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Quotes) != 1 {
		t.Fatalf("expected 1 text match, got %d", len(page.Quotes))
	}

	page, err = svc.Search(ctx, "steve", 0, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Quotes) != 1 {
		t.Fatalf("expected 1 author match, got %d", len(page.Quotes))
	}

	page, err = svc.Search(ctx, "nothing here", 0, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Quotes) != 0 || page.HasMore {
		t.Fatalf("expected empty page without hasMore, got %d/%v", len(page.Quotes), page.HasMore)
	}
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	for i := 0; i < 3; i++ {
		seedQuote(t, db, fmt.Sprintf("shared term %d", i), "A", "Life")
	}

	page, err := svc.Search(context.Background(), "shared", 0, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// A full page cannot be told apart from the end of the results.
	if len(page.Quotes) != 3 || !page.HasMore {
		t.Fatalf("expected full page with hasMore, got %d/%v", len(page.Quotes), page.HasMore)
	}
}

func TestQuoteOfTheDayDeterministic(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		seedQuote(t, db, fmt.Sprintf("q%d", i), "A", "Life")
	}

	day := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	first, err := svc.QuoteOfTheDay(ctx)
	if err != nil {
		t.Fatalf("QuoteOfTheDay: %v", err)
	}

	// Later the same UTC day: identical pick.
	svc.now = func() time.Time { return day.Add(8 * time.Hour) }
	second, err := svc.QuoteOfTheDay(ctx)
	if err != nil {
		t.Fatalf("QuoteOfTheDay: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same day gave different quotes: %d vs %d", first.ID, second.ID)
	}

	// Next UTC day: the ordinal advances by one mod N.
	svc.now = func() time.Time { return day.Add(24 * time.Hour) }
	next, err := svc.QuoteOfTheDay(ctx)
	if err != nil {
		t.Fatalf("QuoteOfTheDay: %v", err)
	}
	if next.ID == first.ID {
		t.Fatalf("day boundary did not change the quote (N=7)")
	}
}

func TestQuoteOfTheDayEmptyTable(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.QuoteOfTheDay(context.Background())
	if !errors.Is(err, ErrNoQuotes) {
		t.Fatalf("expected ErrNoQuotes, got %v", err)
	}
}

func TestCategoriesSortedDistinct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedQuote(t, db, "a", "A", "Wisdom")
	seedQuote(t, db, "b", "B", "Love")
	seedQuote(t, db, "c", "C", "Wisdom")
	seedQuote(t, db, "d", "D", "Happiness")

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	want := []string{"Happiness", "Love", "Wisdom"}
	if len(categories) != len(want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, categories)
		}
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	q := seedQuote(t, db, "a", "A", "Wisdom")

	got, err := svc.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "a" {
		t.Fatalf("wrong quote: %+v", got)
	}

	_, err = svc.GetByID(ctx, q.ID+999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
