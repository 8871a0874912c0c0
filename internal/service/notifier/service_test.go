package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/packhouse/internal/config"
	"github.com/mamadbah2/packhouse/internal/domain/models"
	client "github.com/mamadbah2/packhouse/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (r *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

func TestNotifyManager(t *testing.T) {
	rc := &recordingClient{}
	n := NewWhatsAppNotifier(config.WhatsAppConfig{ManagerID: "213555000111"}, rc, nil)

	if err := n.NotifyManager(context.Background(), "Rapport du jour"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(rc.sent) != 1 || rc.sent[0].To != "213555000111" || rc.sent[0].Body != "Rapport du jour" {
		t.Fatalf("unexpected messages: %+v", rc.sent)
	}
}

func TestSendOutboundExplicitRecipient(t *testing.T) {
	rc := &recordingClient{}
	n := NewWhatsAppNotifier(config.WhatsAppConfig{ManagerID: "manager"}, rc, nil)

	err := n.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "worker", Message: "hello", PreviewURL: true})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if rc.sent[0].To != "worker" || !rc.sent[0].PreviewURL {
		t.Fatalf("unexpected request: %+v", rc.sent[0])
	}
}

func TestSendOutboundErrors(t *testing.T) {
	n := NewWhatsAppNotifier(config.WhatsAppConfig{}, &recordingClient{}, nil)
	if err := n.NotifyManager(context.Background(), "x"); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected no recipient error, got %v", err)
	}

	boom := errors.New("boom")
	n = NewWhatsAppNotifier(config.WhatsAppConfig{ManagerID: "m"}, &recordingClient{err: boom}, nil)
	if err := n.NotifyManager(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}
