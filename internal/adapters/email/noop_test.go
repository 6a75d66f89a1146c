package email

import (
	"context"
	"errors"
	"testing"
)

func TestNoopSender(t *testing.T) {
	s := NewNoopSender()
	res, err := s.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "환영합니다"})
	if err != nil || res.MessageID != "noop-1" {
		t.Fatalf("Send = %+v, %v", res, err)
	}
	if _, err := s.Send(context.Background(), Message{Subject: "no one"}); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("err = %v, want ErrNoRecipient", err)
	}
	sent := s.Sent()
	if len(sent) != 1 || sent[0].Subject != "환영합니다" {
		t.Errorf("Sent = %+v", sent)
	}
}
