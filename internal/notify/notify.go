// SPDX-License-Identifier: MPL-2.0

// Package notify delivers operator notifications about run outcomes.
// Delivery is best-effort by contract: a notification failure is logged by
// the caller and never changes the run's own outcome.
package notify

import (
	"context"
)

// Message priorities. Failure notifications go out high so operator-side
// mail filters can route them.
const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type (
	// Priority is the delivery priority of a message.
	Priority string

	// Message is one operator notification.
	Message struct {
		// Recipients are the destination addresses.
		Recipients []string
		// Subject is the message subject line.
		Subject string
		// Body is the plain-text message body.
		Body string
		// Priority is the delivery priority.
		Priority Priority
		// Attachments are paths of files to attach (diagnostic artifacts).
		Attachments []string
	}

	// Notifier delivers operator notifications.
	Notifier interface {
		// Notify delivers one message. Implementations must not mutate msg.
		Notify(ctx context.Context, msg Message) error
	}
)

// Noop is a Notifier that silently accepts every message. Used when
// notifications are disabled in configuration.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(context.Context, Message) error {
	return nil
}
