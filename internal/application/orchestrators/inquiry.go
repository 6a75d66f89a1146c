package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainInquiry "beautrip/internal/domain/inquiry"
	domainOutbox "beautrip/internal/domain/outbox"
)

// InquiryStoreForSend defines the store interface needed by SendInquiry.
type InquiryStoreForSend interface {
	Save(ctx context.Context, q domainInquiry.Inquiry) error
}

// SendInquiryInput carries the consultation form.
type SendInquiryInput struct {
	AccountID   string
	HospitalID  int64
	TreatmentID int64 // optional
	Channel     string
	Contact     string
	Message     string
}

// SendInquiryDeps holds dependencies for SendInquiry.
type SendInquiryDeps struct {
	Hospitals  HospitalLookup
	Treatments TreatmentLookup
	Inquiries  InquiryStoreForSend
	Outbox     OutboxEnqueuer
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSendInquiry records a consultation request and queues the email to the hospital.
// PRE: HospitalID names an existing hospital
// POST: Inquiry persisted as queued; an inquiry_email outbox entry references it
// INVARIANT: Hospitals without an inquiry email are rejected before anything is stored
func ExecuteSendInquiry(ctx context.Context, input SendInquiryInput, deps SendInquiryDeps) (domainInquiry.Inquiry, error) {
	q := domainInquiry.Inquiry{
		AccountID:   input.AccountID,
		HospitalID:  input.HospitalID,
		TreatmentID: input.TreatmentID,
		Channel:     input.Channel,
		Contact:     strings.TrimSpace(input.Contact),
		Message:     strings.TrimSpace(input.Message),
		Status:      domainInquiry.StatusQueued,
	}
	if err := q.Validate(); err != nil {
		return domainInquiry.Inquiry{}, err
	}

	h, err := deps.Hospitals.GetByID(ctx, input.HospitalID)
	if err != nil {
		return domainInquiry.Inquiry{}, lookupErr("hospital", err)
	}
	if strings.TrimSpace(h.Email) == "" {
		return domainInquiry.Inquiry{}, domainInquiry.ErrHospitalNoEmail
	}
	var treatmentName string
	if input.TreatmentID > 0 {
		t, err := deps.Treatments.GetByID(ctx, input.TreatmentID)
		if err != nil {
			return domainInquiry.Inquiry{}, lookupErr("treatment", err)
		}
		treatmentName = t.Name
	}

	q.ID = deps.GenerateID()
	q.HospitalName = h.Name
	q.CreatedAt = deps.Now()

	msg, err := renderInquiry(q, h, treatmentName)
	if err != nil {
		return domainInquiry.Inquiry{}, err
	}
	entry, err := domainOutbox.NewEntry(deps.GenerateID(), domainOutbox.ActionInquiryEmail, msg, q.CreatedAt)
	if err != nil {
		return domainInquiry.Inquiry{}, err
	}
	if err := deps.Inquiries.Save(ctx, q); err != nil {
		return domainInquiry.Inquiry{}, err
	}
	if err := deps.Outbox.Save(ctx, entry); err != nil {
		return domainInquiry.Inquiry{}, err
	}
	slog.Info("inquiry_queued", "inquiry_id", q.ID, "hospital_id", q.HospitalID, "channel", q.Channel)
	return q, nil
}
