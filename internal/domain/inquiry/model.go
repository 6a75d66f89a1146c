package inquiry

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Contact channels the user can ask the hospital to reply on.
const (
	ChannelPhone = "phone"
	ChannelEmail = "email"
	ChannelChat  = "chat"
)

// Status constants
const (
	StatusQueued = "queued"
	StatusSent   = "sent"
)

// MaxMessageLength bounds the free-text question.
const MaxMessageLength = 1000

// ValidChannels contains all valid channel values.
var ValidChannels = []string{ChannelPhone, ChannelEmail, ChannelChat}

// Domain errors
var (
	ErrEmptyAccountID  = errors.New("account ID cannot be empty")
	ErrEmptyHospital   = errors.New("hospital cannot be empty")
	ErrInvalidChannel  = errors.New("channel must be one of: phone, email, chat")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrMessageTooLong  = errors.New("message cannot exceed 1000 characters")
	ErrEmptyContact    = errors.New("a reply contact is required")
	ErrHospitalNoEmail = errors.New("hospital has no inquiry email")
)

// Inquiry is a consultation request from a user to a hospital.
type Inquiry struct {
	ID           string
	AccountID    string
	HospitalID   int64
	HospitalName string
	TreatmentID  int64 // optional
	Channel      string
	Contact      string // phone number, email or messenger id
	Message      string
	Status       string
	CreatedAt    time.Time
}

// Validate checks if the Inquiry has valid data.
// PRE: Inquiry struct is populated
// POST: Returns nil if valid, error otherwise
func (q *Inquiry) Validate() error {
	if strings.TrimSpace(q.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if q.HospitalID == 0 {
		return ErrEmptyHospital
	}
	switch q.Channel {
	case ChannelPhone, ChannelEmail, ChannelChat:
	default:
		return ErrInvalidChannel
	}
	if strings.TrimSpace(q.Contact) == "" {
		return ErrEmptyContact
	}
	msg := strings.TrimSpace(q.Message)
	if msg == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// Subject is the email subject sent to the hospital.
func (q *Inquiry) Subject() string {
	return "[BeauTrip] 상담 문의 - " + q.HospitalName
}
