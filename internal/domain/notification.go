package domain

import "time"

// Notification types.
const (
	NotificationLocation = "location"
	NotificationNews     = "news"
	NotificationSystem   = "system"
	NotificationCustom   = "custom"
)

// Notification is an append-only inbox entry for back-office admins.
//
// Read state is tracked per admin in ReadBy. The Read flag is a legacy
// global marker carried over from old data: it is honored when deriving
// read state but is never written by any current code path.
type Notification struct {
	NotificationID string                 `json:"id" dynamodbav:"notification_id"`
	Type           string                 `json:"type" dynamodbav:"type"`
	Message        string                 `json:"message" dynamodbav:"message"`
	Payload        map[string]interface{} `json:"payload" dynamodbav:"payload"`
	Read           bool                   `json:"-" dynamodbav:"read"`
	ReadBy         []string               `json:"readBy" dynamodbav:"read_by,stringset,omitempty"`
	CreatedBy      string                 `json:"createdBy,omitempty" dynamodbav:"created_by"`
	CreatedByName  string                 `json:"createdByName,omitempty" dynamodbav:"created_by_name"`
	CreatedAt      time.Time              `json:"createdAt" dynamodbav:"created_at"`
}

// IsReadBy reports whether the notification is read for the given admin:
// either the legacy global flag is set, or the admin is in the read-by set.
func (n *Notification) IsReadBy(adminID string) bool {
	if n.Read {
		return true
	}
	for _, id := range n.ReadBy {
		if id == adminID {
			return true
		}
	}
	return false
}

// NotificationView is a Notification decorated with the read state derived
// for the requesting admin.
type NotificationView struct {
	Notification
	IsRead bool `json:"isRead"`
}
