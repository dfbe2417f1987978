package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"order-notification-service/internal/events"
	"order-notification-service/internal/models"
)

// Dispatcher submits rendered notification emails with the per-type subject
// and the fixed sender/CC addressing rules.
type Dispatcher struct {
	mailer   EmailSender
	from     string
	fromName string
	cc       string
	logger   *logrus.Entry
}

// NewDispatcher creates a dispatcher sending from the given address with one
// fixed operational CC.
func NewDispatcher(mailer EmailSender, from, fromName, cc string) *Dispatcher {
	return &Dispatcher{
		mailer:   mailer,
		from:     from,
		fromName: fromName,
		cc:       cc,
		logger:   logrus.WithField("component", "dispatcher"),
	}
}

// Dispatch sends the rendered HTML to the organization's registered email.
// One successful call produces exactly one outbound email; there is no dedup
// here, so a redelivered queue record reproduces the same email.
func (d *Dispatcher) Dispatch(ctx context.Context, t events.NotificationType, html string, org models.Organization) error {
	message := &Message{
		To:       org.Email,
		CC:       []string{d.cc},
		From:     d.from,
		FromName: d.fromName,
		Subject:  SubjectFor(t, org.Name),
		BodyHTML: html,
	}

	if err := d.mailer.Send(ctx, message); err != nil {
		return fmt.Errorf("dispatch %s email to %s: %w", t, org.Email, err)
	}

	d.logger.WithFields(logrus.Fields{
		"type":   string(t),
		"to":     org.Email,
		"mailer": d.mailer.GetName(),
	}).Info("notification email sent")
	return nil
}

// SubjectFor returns the localized subject line for a notification type,
// parameterized by the organization's display name.
func SubjectFor(t events.NotificationType, organizationName string) string {
	switch t {
	case events.OrderCreated:
		return fmt.Sprintf("Sipariş Verildi (%s)", organizationName)
	case events.OrderCanceled:
		return fmt.Sprintf("Sipariş Iptal Edildi (%s)", organizationName)
	case events.OrderDelivered:
		return fmt.Sprintf("Sipariş Teslim Edildi (%s)", organizationName)
	default:
		return fmt.Sprintf("Sipariş Bildirimi (%s)", organizationName)
	}
}
