package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind is the severity class of a feed entry.
type NotificationKind string

const (
	NotifSuccess NotificationKind = "success"
	NotifWarning NotificationKind = "warning"
	NotifError   NotificationKind = "error"
	NotifInfo    NotificationKind = "info"
)

// Notification is one entry of the admin notification feed.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	ActionLabel string           `json:"action_label,omitempty"`
	ActionURL   string           `json:"action_url,omitempty"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
