package validators

// UpdateSettingsRequest is a partial settings patch; nil fields are left
// untouched by the server-side shallow merge.
type UpdateSettingsRequest struct {
	Theme                *string `json:"theme,omitempty" binding:"omitempty,oneof=light dark"`
	AccentColor          *string `json:"accentColor,omitempty" binding:"omitempty,hexcolor"`
	FontSize             *string `json:"fontSize,omitempty" binding:"omitempty,oneof=small medium large"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	NotificationHour     *int    `json:"notificationHour,omitempty" binding:"omitempty,min=0,max=23"`
	NotificationMinute   *int    `json:"notificationMinute,omitempty" binding:"omitempty,oneof=0 15 30 45"`
}

// SyncSettingsRequest carries the device-local snapshot sent at login.
type SyncSettingsRequest struct {
	Theme                string `json:"theme" binding:"required,oneof=light dark"`
	AccentColor          string `json:"accentColor" binding:"required"`
	FontSize             string `json:"fontSize" binding:"required,oneof=small medium large"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	NotificationHour     int    `json:"notificationHour" binding:"min=0,max=23"`
	NotificationMinute   int    `json:"notificationMinute" binding:"oneof=0 15 30 45"`
}
