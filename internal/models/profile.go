package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// UserSettings is persisted as a single JSON column on Profile, mirroring
// the device-side snapshot. The server copy wins on reconciliation.
type UserSettings struct {
	Theme                Theme    `json:"theme"`
	AccentColor          string   `json:"accentColor"`
	FontSize             FontSize `json:"fontSize"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	NotificationHour     int      `json:"notificationHour"`
	NotificationMinute   int      `json:"notificationMinute"`
}

func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:                ThemeLight,
		AccentColor:          "#007AFF",
		FontSize:             FontMedium,
		NotificationsEnabled: true,
		NotificationHour:     9,
		NotificationMinute:   0,
	}
}

type Profile struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	DisplayName string       `json:"display_name"`
	AvatarURL   string       `json:"avatar_url"`
	Settings    UserSettings `json:"settings" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
