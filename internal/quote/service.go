package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Rohitprj/QuoteVault/internal/models"
)

var (
	ErrNotFound = errors.New("quote not found")
	ErrNoQuotes = errors.New("no quotes available")
)

// Page is one bounded slice of the quote table. HasMore is an
// approximation: a full page that happens to be the last one still reports
// true, and the client finds out on the next (empty) fetch.
type Page struct {
	Quotes  []models.Quote `json:"quotes"`
	HasMore bool           `json:"has_more"`
}

type Service struct {
	db *gorm.DB

	// now is swapped out in tests to pin the quote-of-the-day boundary.
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// List returns quotes ordered by ascending id. category filters by exact
// match unless it is empty or the "All" sentinel.
func (s *Service) List(ctx context.Context, offset, limit int, category string) (Page, error) {
	q := s.db.WithContext(ctx).Model(&models.Quote{}).
		Order("id ASC").
		Offset(offset).
		Limit(limit)

	if category != "" && category != models.AllCategories {
		q = q.Where("category = ?", category)
	}

	var quotes []models.Quote
	if err := q.Find(&quotes).Error; err != nil {
		return Page{}, fmt.Errorf("list quotes: %w", err)
	}

	return Page{Quotes: quotes, HasMore: len(quotes) == limit}, nil
}

// Search matches the query as a case-insensitive substring of either the
// text or the author, paginated like List.
func (s *Service) Search(ctx context.Context, query string, offset, limit int) (Page, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var quotes []models.Quote
	err := s.db.WithContext(ctx).Model(&models.Quote{}).
		Where("LOWER(text) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&quotes).Error
	if err != nil {
		return Page{}, fmt.Errorf("search quotes: %w", err)
	}

	return Page{Quotes: quotes, HasMore: len(quotes) == limit}, nil
}

// QuoteOfTheDay picks the quote at ordinal (epochDay mod count). Epoch days
// are derived from unix seconds, so the selection flips at UTC midnight for
// every caller regardless of locale.
func (s *Service) QuoteOfTheDay(ctx context.Context) (*models.Quote, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Quote{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}
	if count == 0 {
		return nil, ErrNoQuotes
	}

	dayIndex := s.now().Unix() / 86400
	index := dayIndex % count

	var q models.Quote
	err := s.db.WithContext(ctx).Model(&models.Quote{}).
		Order("id ASC").
		Offset(int(index)).
		Limit(1).
		First(&q).Error
	if err != nil {
		return nil, fmt.Errorf("fetch quote of the day: %w", err)
	}

	return &q, nil
}

// Categories returns the sorted distinct category values.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.Quote{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*models.Quote, error) {
	var q models.Quote
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quote %d: %w", id, err)
	}
	return &q, nil
}
