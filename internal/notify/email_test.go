package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_KeepsFromIdentity(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "noreply@mikeyoung.ai",
		FromName:  "mikeyoung.ai",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "mikeyoung.ai" || sender.fromEmail != "noreply@mikeyoung.ai" {
		t.Errorf("unexpected from identity %q <%s>", sender.fromName, sender.fromEmail)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{client: nil}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test",
		Body:    "Test body",
	})

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestSendGridSender_SendSetsReplyTo(t *testing.T) {
	var captured string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = string(body)
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "noreply@mikeyoung.ai",
		FromName:  "mikeyoung.ai",
		Host:      srv.URL,
	}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "hello@mikeyoung.ai",
		ReplyTo: "ada@example.com",
		Subject: "New inquiry: website from Ada",
		Body:    "body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, `"reply_to"`) || !strings.Contains(captured, "ada@example.com") {
		t.Fatalf("expected reply_to in payload, got %s", captured)
	}
	if !strings.Contains(captured, "noreply@mikeyoung.ai") {
		t.Fatalf("expected from address in payload, got %s", captured)
	}
}

func TestSendGridSender_SendTextOnly(t *testing.T) {
	var payload struct {
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "noreply@mikeyoung.ai",
		Host:      srv.URL,
	}, nil)

	body := "Name: <img src=x onerror=alert(1)>\nline2"
	if err := sender.Send(context.Background(), EmailMessage{
		To:      "hello@mikeyoung.ai",
		Subject: "New inquiry",
		Body:    body,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payload.Content) != 1 {
		t.Fatalf("expected a single content part, got %+v", payload.Content)
	}
	if payload.Content[0].Type != "text/plain" || payload.Content[0].Value != body {
		t.Fatalf("unexpected content %+v", payload.Content[0])
	}
}

func TestSendGridSender_SendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad"}]}`))
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "k", FromEmail: "a@example.com", Host: srv.URL}, nil)
	err := sender.Send(context.Background(), EmailMessage{To: "b@example.com", Subject: "s", Body: "b"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test Subject",
		Body:    "Test body",
	})

	if err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name      string
		override  string
		wantName  string
		wantEmail string
	}{
		{"empty uses defaults", "", "Default", "default@example.com"},
		{"display form", "mikeyoung.ai <noreply@mikeyoung.ai>", "mikeyoung.ai", "noreply@mikeyoung.ai"},
		{"bare address", "noreply@mikeyoung.ai", "", "noreply@mikeyoung.ai"},
		{"garbage uses defaults", "not an address", "Default", "default@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email := splitAddress(tt.override, "Default", "default@example.com")
			if name != tt.wantName || email != tt.wantEmail {
				t.Fatalf("got %q <%s>, want %q <%s>", name, email, tt.wantName, tt.wantEmail)
			}
		})
	}
}
