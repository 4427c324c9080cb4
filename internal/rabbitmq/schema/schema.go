package schema

import "encoding/json"

const (
	KindPasswordReset   = "password_reset"
	KindPasswordChanged = "password_changed"
)

// Notification is the message delivered to the notifier worker.
type Notification struct {
	Kind   string `json:"kind"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	// Link is set for password reset notifications only.
	Link string `json:"link,omitempty"`
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}
