package collection

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Rohitprj/QuoteVault/internal/models"
)

// ErrAccessDenied covers both a missing collection and one owned by
// someone else; callers cannot distinguish the two on purpose.
var ErrAccessDenied = errors.New("collection not found or access denied")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// verifyOwner re-confirms ownership server-side before any read or
// mutation that takes a client-supplied collection id. Each call pays the
// extra round trip; there is deliberately no session-level cache.
func (s *Service) verifyOwner(ctx context.Context, collectionID uint, userID string) error {
	var col models.Collection
	err := s.db.WithContext(ctx).
		Select("id").
		Where("id = ? AND user_id = ?", collectionID, userID).
		First(&col).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("verify collection owner: %w", err)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID, title string) (*models.Collection, error) {
	col := models.Collection{UserID: userID, Title: title}
	if err := s.db.WithContext(ctx).Create(&col).Error; err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &col, nil
}

// ListByUser returns the user's collections, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// GetWithQuotes verifies ownership, then assembles the collection together
// with its member quotes.
func (s *Service) GetWithQuotes(ctx context.Context, collectionID uint, userID string) (*models.CollectionWithQuotes, error) {
	var col models.Collection
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", collectionID, userID).
		First(&col).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("fetch collection: %w", err)
	}

	var quotes []models.Quote
	err = s.db.WithContext(ctx).Model(&models.Quote{}).
		Joins("JOIN collection_quotes ON collection_quotes.quote_id = quotes.id").
		Where("collection_quotes.collection_id = ?", collectionID).
		Order("quotes.id ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("fetch collection quotes: %w", err)
	}

	return &models.CollectionWithQuotes{
		Collection: col,
		Quotes:     quotes,
		QuoteCount: len(quotes),
	}, nil
}

// AddQuote re-verifies ownership, then inserts the membership row.
// Re-adding an existing member is a no-op success.
func (s *Service) AddQuote(ctx context.Context, collectionID, quoteID uint, userID string) error {
	if err := s.verifyOwner(ctx, collectionID, userID); err != nil {
		return err
	}

	member := models.CollectionQuote{CollectionID: collectionID, QuoteID: quoteID}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("add quote to collection: %w", err)
	}
	return nil
}

func (s *Service) RemoveQuote(ctx context.Context, collectionID, quoteID uint, userID string) error {
	if err := s.verifyOwner(ctx, collectionID, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND quote_id = ?", collectionID, quoteID).
		Delete(&models.CollectionQuote{}).Error
	if err != nil {
		return fmt.Errorf("remove quote from collection: %w", err)
	}
	return nil
}

// Delete removes the collection scoped to the owner. Membership rows go
// with it via the schema's cascade, not client logic.
func (s *Service) Delete(ctx context.Context, collectionID uint, userID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", collectionID, userID).
		Delete(&models.Collection{})
	if res.Error != nil {
		return fmt.Errorf("delete collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) Rename(ctx context.Context, collectionID uint, userID, title string) error {
	// RowsAffected is useless here: renaming to the current title reports
	// zero affected rows on MySQL, so ownership is checked explicitly.
	if err := s.verifyOwner(ctx, collectionID, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Model(&models.Collection{}).
		Where("id = ? AND user_id = ?", collectionID, userID).
		Update("title", title).Error
	if err != nil {
		return fmt.Errorf("rename collection: %w", err)
	}
	return nil
}

// Contains reports membership. A foreign collection yields ErrAccessDenied,
// never a silent false.
func (s *Service) Contains(ctx context.Context, collectionID, quoteID uint, userID string) (bool, error) {
	if err := s.verifyOwner(ctx, collectionID, userID); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.CollectionQuote{}).
		Where("collection_id = ? AND quote_id = ?", collectionID, quoteID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check collection membership: %w", err)
	}
	return count > 0, nil
}
