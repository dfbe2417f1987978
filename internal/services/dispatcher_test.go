package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-notification-service/internal/events"
	"order-notification-service/internal/models"
)

type stubMailer struct {
	sent []*Message
	err  error
}

func (s *stubMailer) Send(ctx context.Context, message *Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, message)
	return nil
}

func (s *stubMailer) GetName() string { return "stub" }

func TestSubjectFor(t *testing.T) {
	tests := []struct {
		name string
		typ  events.NotificationType
		want string
	}{
		{name: "created", typ: events.OrderCreated, want: "Sipariş Verildi (Acme)"},
		{name: "canceled", typ: events.OrderCanceled, want: "Sipariş Iptal Edildi (Acme)"},
		{name: "delivered", typ: events.OrderDelivered, want: "Sipariş Teslim Edildi (Acme)"},
		{name: "fallback", typ: events.NotificationType("OrderShipped"), want: "Sipariş Bildirimi (Acme)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubjectFor(tt.typ, "Acme"))
		})
	}
}

func TestDispatch_AddressingRules(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, "noreply@halapp.io", "HalApp", "info@halapp.io")
	org := models.Organization{Name: "Acme", Email: "a@x.com"}

	err := d.Dispatch(context.Background(), events.OrderCreated, "<p>body</p>", org)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "a@x.com", sent.To)
	assert.Equal(t, []string{"info@halapp.io"}, sent.CC)
	assert.Equal(t, "noreply@halapp.io", sent.From)
	assert.Equal(t, "HalApp", sent.FromName)
	assert.Equal(t, "Sipariş Verildi (Acme)", sent.Subject)
	assert.Equal(t, "<p>body</p>", sent.BodyHTML)
}

func TestDispatch_SendFailurePropagates(t *testing.T) {
	mailer := &stubMailer{err: assert.AnError}
	d := NewDispatcher(mailer, "noreply@halapp.io", "", "info@halapp.io")

	err := d.Dispatch(context.Background(), events.OrderDelivered, "<p>body</p>",
		models.Organization{Name: "Acme", Email: "a@x.com"})
	assert.ErrorIs(t, err, assert.AnError)
}
