package prefs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/validators"
)

// ProfileAPI is the remote half the syncer talks to: the quote service's
// settings endpoints, or the settings service directly in tests.
type ProfileAPI interface {
	SyncOnLogin(ctx context.Context, userID string, local models.UserSettings) (models.UserSettings, error)
	Push(ctx context.Context, userID string, patch validators.UpdateSettingsRequest) error
}

// notificationBlob is the JSON shape of the notificationSettings entry.
type notificationBlob struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

const pushTimeout = 5 * time.Second

// Service holds the device's current settings. It replaces the ambient
// app-wide context of the mobile clients with one explicit object built at
// startup and handed to consumers, with Load and OnChange as the contract.
//
// Every mutation is written to the local store first; the store stays the
// durable source of truth for this device. With a session attached, each
// change is additionally pushed to the server in the background, at most
// once: a failed push is logged and dropped, never retried, and never rolls
// back the local change.
type Service struct {
	store  *Store
	remote ProfileAPI

	mu       sync.Mutex
	userID   string
	settings models.UserSettings
	subs     []func(models.UserSettings)

	// wg lets tests wait for in-flight pushes.
	wg sync.WaitGroup
}

func NewService(store *Store, remote ProfileAPI) *Service {
	return &Service{
		store:    store,
		remote:   remote,
		settings: models.DefaultSettings(),
	}
}

// Load reads each stored entry over the defaults. Missing entries keep
// their default value.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme, err := s.store.Get(KeyTheme); err != nil {
		return err
	} else if theme != "" {
		s.settings.Theme = models.Theme(theme)
	}

	if accent, err := s.store.Get(KeyAccentColor); err != nil {
		return err
	} else if accent != "" {
		s.settings.AccentColor = accent
	}

	if size, err := s.store.Get(KeyTextSize); err != nil {
		return err
	} else if size != "" {
		s.settings.FontSize = models.FontSize(size)
	}

	if raw, err := s.store.Get(KeyNotifications); err != nil {
		return err
	} else if raw != "" {
		var blob notificationBlob
		if err := json.Unmarshal([]byte(raw), &blob); err == nil {
			s.settings.NotificationsEnabled = blob.Enabled
			s.settings.NotificationHour = blob.Hour
			s.settings.NotificationMinute = blob.Minute
		}
	}

	return nil
}

// OnChange registers fn to run after every settings change, including the
// overwrite at login sync.
func (s *Service) OnChange(fn func(models.UserSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Service) Current() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// notifyLocked snapshots subscribers under the lock and invokes them
// outside it.
func (s *Service) notifyLocked() func() {
	subs := make([]func(models.UserSettings), len(s.subs))
	copy(subs, s.subs)
	current := s.settings
	return func() {
		for _, fn := range subs {
			fn(current)
		}
	}
}

// SetSession attaches the authenticated user and pulls the authoritative
// settings. Server values, when present, unconditionally overwrite local
// state and storage; with no server record the local snapshot is uploaded
// as the initial server state. On sync failure the local values stand.
func (s *Service) SetSession(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.userID = userID
	local := s.settings
	s.mu.Unlock()

	if s.remote == nil {
		return nil
	}

	authoritative, err := s.remote.SyncOnLogin(ctx, userID, local)
	if err != nil {
		zap.L().Warn("settings sync on login failed, keeping local values",
			zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.settings = authoritative
	notify := s.notifyLocked()
	s.mu.Unlock()

	if err := s.persist(authoritative); err != nil {
		return err
	}

	notify()
	return nil
}

// ClearSession returns the service to local-only mode.
func (s *Service) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
}

func (s *Service) persist(settings models.UserSettings) error {
	if err := s.store.Set(KeyTheme, string(settings.Theme)); err != nil {
		return err
	}
	if err := s.store.Set(KeyAccentColor, settings.AccentColor); err != nil {
		return err
	}
	if err := s.store.Set(KeyTextSize, string(settings.FontSize)); err != nil {
		return err
	}
	blob, _ := json.Marshal(notificationBlob{
		Enabled: settings.NotificationsEnabled,
		Hour:    settings.NotificationHour,
		Minute:  settings.NotificationMinute,
	})
	return s.store.Set(KeyNotifications, string(blob))
}

// apply commits a mutation locally and fires the background push.
func (s *Service) apply(mutate func(*models.UserSettings), persist func() error, patch validators.UpdateSettingsRequest) error {
	s.mu.Lock()
	mutate(&s.settings)
	userID := s.userID
	notify := s.notifyLocked()
	s.mu.Unlock()

	if err := persist(); err != nil {
		return err
	}

	notify()
	s.push(userID, patch)
	return nil
}

// push sends the changed fields to the server without waiting. At most
// once: failures are logged, not retried, and the local write stands.
func (s *Service) push(userID string, patch validators.UpdateSettingsRequest) {
	if s.remote == nil || userID == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		if err := s.remote.Push(ctx, userID, patch); err != nil {
			zap.L().Warn("settings push failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}()
}

// Flush waits for pending pushes; used in tests and at shutdown.
func (s *Service) Flush() {
	s.wg.Wait()
}

func (s *Service) SetTheme(theme models.Theme) error {
	v := string(theme)
	return s.apply(
		func(st *models.UserSettings) { st.Theme = theme },
		func() error { return s.store.Set(KeyTheme, v) },
		validators.UpdateSettingsRequest{Theme: &v},
	)
}

func (s *Service) SetAccentColor(color string) error {
	return s.apply(
		func(st *models.UserSettings) { st.AccentColor = color },
		func() error { return s.store.Set(KeyAccentColor, color) },
		validators.UpdateSettingsRequest{AccentColor: &color},
	)
}

func (s *Service) SetFontSize(size models.FontSize) error {
	v := string(size)
	return s.apply(
		func(st *models.UserSettings) { st.FontSize = size },
		func() error { return s.store.Set(KeyTextSize, v) },
		validators.UpdateSettingsRequest{FontSize: &v},
	)
}

// SetNotifications updates the daily reminder schedule. Scheduling the
// platform notification itself is the caller's concern.
func (s *Service) SetNotifications(enabled bool, hour, minute int) error {
	blob, _ := json.Marshal(notificationBlob{Enabled: enabled, Hour: hour, Minute: minute})
	return s.apply(
		func(st *models.UserSettings) {
			st.NotificationsEnabled = enabled
			st.NotificationHour = hour
			st.NotificationMinute = minute
		},
		func() error { return s.store.Set(KeyNotifications, string(blob)) },
		validators.UpdateSettingsRequest{
			NotificationsEnabled: &enabled,
			NotificationHour:     &hour,
			NotificationMinute:   &minute,
		},
	)
}
