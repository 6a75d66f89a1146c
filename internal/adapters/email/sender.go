package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("email has no recipient")

// Message is one outgoing email.
type Message struct {
	To      []string
	From    string // overrides the sender default, e.g. "BeauTrip <noreply@beautrip.kr>"
	Subject string
	HTML    string
	Text    string // plain-text alternative
	ReplyTo string
	Tags    map[string]string
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (SendResult, error)
}
