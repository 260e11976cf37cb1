package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/validators"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// hasSettings distinguishes a profile that has synced settings at least
// once from one created by a display-name or avatar write alone. Theme is
// never empty in a written settings blob.
func hasSettings(p *models.Profile) bool {
	return p != nil && p.Settings.Theme != ""
}

// withDefaults fills fields an older settings blob may be missing.
func withDefaults(s models.UserSettings) models.UserSettings {
	d := models.DefaultSettings()
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if s.AccentColor == "" {
		s.AccentColor = d.AccentColor
	}
	if s.FontSize == "" {
		s.FontSize = d.FontSize
	}
	return s
}

// Profile returns the stored profile, or nil when the user has never
// written one; it is created lazily on first update.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	p.Settings = withDefaults(p.Settings)
	return &p, nil
}

// Get returns the user's settings merged with defaults, or nil when no
// profile settings exist yet.
func (s *Service) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasSettings(p) {
		return nil, nil
	}
	merged := withDefaults(p.Settings)
	return &merged, nil
}

func applyPatch(base models.UserSettings, patch validators.UpdateSettingsRequest) models.UserSettings {
	if patch.Theme != nil {
		base.Theme = models.Theme(*patch.Theme)
	}
	if patch.AccentColor != nil {
		base.AccentColor = *patch.AccentColor
	}
	if patch.FontSize != nil {
		base.FontSize = models.FontSize(*patch.FontSize)
	}
	if patch.NotificationsEnabled != nil {
		base.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.NotificationHour != nil {
		base.NotificationHour = *patch.NotificationHour
	}
	if patch.NotificationMinute != nil {
		base.NotificationMinute = *patch.NotificationMinute
	}
	return base
}

func (s *Service) upsertSettings(ctx context.Context, userID string, merged models.UserSettings) error {
	p := models.Profile{ID: userID, Settings: merged}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// Update is the steady-state partial write: fetch the existing settings,
// shallow-merge the changed fields and upsert the result.
func (s *Service) Update(ctx context.Context, userID string, patch validators.UpdateSettingsRequest) (models.UserSettings, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return models.UserSettings{}, err
	}

	base := models.DefaultSettings()
	if hasSettings(p) {
		base = withDefaults(p.Settings)
	}
	merged := applyPatch(base, patch)

	if err := s.upsertSettings(ctx, userID, merged); err != nil {
		return models.UserSettings{}, err
	}
	return merged, nil
}

// Push satisfies the device syncer's remote contract; it is Update with
// the result dropped.
func (s *Service) Push(ctx context.Context, userID string, patch validators.UpdateSettingsRequest) error {
	_, err := s.Update(ctx, userID, patch)
	return err
}

// SyncOnLogin reconciles a device-local snapshot against the profile.
// Server settings win unconditionally when present; otherwise the local
// snapshot becomes the initial server state. No field-level merge, no
// timestamp comparison.
func (s *Service) SyncOnLogin(ctx context.Context, userID string, local models.UserSettings) (models.UserSettings, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return models.UserSettings{}, err
	}

	if hasSettings(p) {
		return withDefaults(p.Settings), nil
	}

	merged := withDefaults(local)
	if err := s.upsertSettings(ctx, userID, merged); err != nil {
		return models.UserSettings{}, err
	}
	return merged, nil
}

func (s *Service) SetDisplayName(ctx context.Context, userID, displayName string) error {
	p := models.Profile{ID: userID, DisplayName: displayName}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (s *Service) SetAvatar(ctx context.Context, userID, avatarURL string) error {
	p := models.Profile{ID: userID, AvatarURL: avatarURL}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"avatar_url", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}
