package favorite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/quote"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Toggle flips the favorite relationship based on the state the caller
// already knows, saving the read round-trip. Two racing toggles for the
// same pair can both take the insert path; the composite primary key
// absorbs the duplicate and it is reported as success rather than a
// conflict.
func (s *Service) Toggle(ctx context.Context, userID string, quoteID uint, currentlyFavorited bool) error {
	if currentlyFavorited {
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND quote_id = ?", userID, quoteID).
			Delete(&models.Favorite{}).Error
		if err != nil {
			return fmt.Errorf("remove favorite: %w", err)
		}
		return nil
	}

	fav := models.Favorite{UserID: userID, QuoteID: quoteID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Status reports whether the pair exists; absence is not an error.
func (s *Service) Status(ctx context.Context, userID string, quoteID uint) (bool, error) {
	var fav models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return true, nil
}

// ListQuotes returns full quote records for the user's favorites, most
// recently favorited first.
func (s *Service) ListQuotes(ctx context.Context, userID string, offset, limit int) (quote.Page, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, quote_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return quote.Page{}, fmt.Errorf("list favorites: %w", err)
	}

	quoteIDs := make([]uint, len(favorites))
	for i, f := range favorites {
		quoteIDs[i] = f.QuoteID
	}

	var quotes []models.Quote
	if len(quoteIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", quoteIDs).Find(&quotes).Error; err != nil {
			return quote.Page{}, fmt.Errorf("load favorite quotes: %w", err)
		}
	}
	quoteMap := make(map[uint]models.Quote, len(quotes))
	for _, q := range quotes {
		quoteMap[q.ID] = q
	}

	// Reassemble in favorite order; memberships pointing at vanished quotes
	// are skipped.
	ordered := make([]models.Quote, 0, len(favorites))
	for _, f := range favorites {
		if q, ok := quoteMap[f.QuoteID]; ok {
			ordered = append(ordered, q)
		}
	}

	return quote.Page{Quotes: ordered, HasMore: len(favorites) == limit}, nil
}

// IDs returns every favorited quote id for the user in one unpaginated
// fetch, meant for building a membership set on the client.
func (s *Service) IDs(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("quote_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	return ids, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}
