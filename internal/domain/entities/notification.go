package entities

import "time"

// Notification is a user-facing message. "Clearing" marks records read; it
// never removes them.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// UserPreferences holds dashboard settings. NotificationPreferences is an open
// object so clients can add keys without a schema change; updates shallow
// merge into it.
type UserPreferences struct {
	NotificationPreferences map[string]interface{} `json:"notificationPreferences"`
	DefaultCity             string                 `json:"defaultCity,omitempty"`
	FavoriteRoutes          []string               `json:"favoriteRoutes,omitempty"`
}
