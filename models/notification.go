package models

// Notification channels.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// MessagePayload is the unit of work queued for the notification worker.
// Ref ties the message back to the record that triggered it (for example an
// appointment ID) so delivery can be marked on it.
type MessagePayload struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Body    string `json:"body"`
	Ref     string `json:"ref,omitempty"`
	RefKind string `json:"refKind,omitempty"`
}
