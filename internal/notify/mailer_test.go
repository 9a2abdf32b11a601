package notify

import (
	"errors"
	"strings"
	"testing"
)

func TestMailer_Disabled(t *testing.T) {
	m := NewMailer(Config{})
	if m.Enabled() {
		t.Fatal("mailer without host should be disabled")
	}
	if err := m.Send(Message{To: "jo@example.com"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestCompose_RequiresRecipient(t *testing.T) {
	m := NewMailer(Config{Host: "smtp.example.com", From: "quotes@example.com"})
	if _, err := m.compose(Message{To: "  "}); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
}

func TestCompose_BuildsMessageWithAttachment(t *testing.T) {
	m := NewMailer(Config{
		Host:     "smtp.example.com",
		Port:     "2525",
		Username: "user",
		Password: "pass",
		From:     "quotes@example.com",
		FromName: "SP Interior Solutions",
	})

	mail, err := m.compose(Message{
		To:           "jo@example.com",
		CustomerName: "Jo",
		QuoteNumber:  "QU123456",
		Total:        "$121.00",
		FileName:     "Jo_Quote_QU123456.pdf",
		PDF:          []byte("%PDF-1.3 fake"),
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	buf, err := mail.MimeBuf()
	if err != nil {
		t.Fatalf("MimeBuf: %v", err)
	}
	raw := buf.String()

	for _, want := range []string{
		"To: jo@example.com",
		"Subject: Your quotation QU123456",
		"quotes@example.com",
		"Hi Jo,",
		"$121.00",
		"Jo_Quote_QU123456.pdf",
		"application/pdf",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected message to contain %q, got:\n%s", want, raw)
		}
	}
}
