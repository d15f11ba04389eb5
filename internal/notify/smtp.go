// SPDX-License-Identifier: MPL-2.0

package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type (
	// SMTPConfig holds the delivery settings for the SMTP notifier.
	SMTPConfig struct {
		Host     string
		Port     int
		From     string
		Username string
		Password string
	}

	// SMTPNotifier delivers notifications over SMTP.
	SMTPNotifier struct {
		cfg SMTPConfig
	}
)

// NewSMTPNotifier creates a notifier for the given delivery settings.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

// Notify implements Notifier.
func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	m := mail.NewMsg()
	if err := m.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid from address %q: %w", n.cfg.From, err)
	}
	if err := m.To(msg.Recipients...); err != nil {
		return fmt.Errorf("invalid recipient list: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.Priority == PriorityHigh {
		m.SetImportance(mail.ImportanceHigh)
	}
	for _, path := range msg.Attachments {
		m.AttachFile(path)
	}

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}
