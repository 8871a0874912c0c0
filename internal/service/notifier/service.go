package notifier

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/config"
	"github.com/mamadbah2/packhouse/internal/domain/models"
	client "github.com/mamadbah2/packhouse/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// ErrNoRecipient is returned when neither the request nor the config names a recipient.
var ErrNoRecipient = errors.New("no recipient configured")

// Notifier pushes text messages to WhatsApp users.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyManager(ctx context.Context, message string) error
}

// WhatsAppNotifier is the production implementation backed by the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewWhatsAppNotifier wires a new notifier instance.
func NewWhatsAppNotifier(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{cfg: cfg, client: client, logger: logger}
}

// SendOutbound sends a message, defaulting the recipient to the manager.
func (n *WhatsAppNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to := req.To
	if to == "" {
		to = n.cfg.ManagerID
	}
	if to == "" {
		return ErrNoRecipient
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	res, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         to,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	parts := 0
	if res != nil {
		parts = len(res.Messages)
	}
	n.logger.Info("whatsapp message sent", zap.String("to", to), zap.Int("parts", parts))
	return nil
}

// NotifyManager sends message to the configured manager.
func (n *WhatsAppNotifier) NotifyManager(ctx context.Context, message string) error {
	return n.SendOutbound(ctx, models.OutboundMessageRequest{Message: message})
}
