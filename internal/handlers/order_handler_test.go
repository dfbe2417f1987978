package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-notification-service/internal/events"
	"order-notification-service/internal/models"
	"order-notification-service/internal/repository"
	"order-notification-service/internal/services"
)

type fakeInventoryRepo struct {
	inventories []models.Inventory
	err         error
	calls       int
}

func (f *fakeInventoryRepo) FetchAll(ctx context.Context) ([]models.Inventory, error) {
	f.calls++
	return f.inventories, f.err
}

type fakeOrganizationRepo struct {
	org   *models.Organization
	err   error
	calls int
}

func (f *fakeOrganizationRepo) Fetch(ctx context.Context, organizationID string) (*models.Organization, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.org, nil
}

type fakeTemplateStore struct {
	body  string
	err   error
	calls int
}

func (f *fakeTemplateStore) Get(ctx context.Context, key string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

type fakeMailer struct {
	sent []*services.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, message *services.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakeMailer) GetName() string { return "fake" }

type pipeline struct {
	handler *OrderHandler
	invRepo *fakeInventoryRepo
	orgRepo *fakeOrganizationRepo
	store   *fakeTemplateStore
	mailer  *fakeMailer
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	invRepo := &fakeInventoryRepo{
		inventories: []models.Inventory{{ProductID: "p1", Name: "Tomato"}},
	}
	orgRepo := &fakeOrganizationRepo{
		org: &models.Organization{ID: "org-1", Name: "Acme", Email: "a@x.com"},
	}
	store := &fakeTemplateStore{
		body: `<p>{{.OrganizationName}}: {{range .Items}}{{.Name}} x{{.Count}}{{end}}</p>`,
	}
	mailer := &fakeMailer{}

	renderer := services.NewRenderer(store, map[events.NotificationType]string{
		events.OrderCreated:   "templates/order-created.html",
		events.OrderCanceled:  "templates/order-canceled.html",
		events.OrderDelivered: "templates/order-delivered.html",
	})
	dispatcher := services.NewDispatcher(mailer, "noreply@halapp.io", "HalApp", "info@halapp.io")

	return &pipeline{
		handler: NewOrderHandler(invRepo, orgRepo, renderer, dispatcher, "https://halapp.io"),
		invRepo: invRepo,
		orgRepo: orgRepo,
		store:   store,
		mailer:  mailer,
	}
}

func recordBody(t *testing.T, notificationType string, order models.Order) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{"Order": order})
	require.NoError(t, err)
	inner, err := json.Marshal(map[string]interface{}{
		"Type":    notificationType,
		"Payload": json.RawMessage(payload),
	})
	require.NoError(t, err)
	outer, err := json.Marshal(map[string]string{
		"Subject": "order event",
		"Message": string(inner),
	})
	require.NoError(t, err)
	return outer
}

func sampleOrder() models.Order {
	return models.Order{
		ID:             "order-1",
		OrganizationID: "org-1",
		Items: []models.OrderItem{
			{ProductID: "p1", Count: 2, Unit: "kg", Price: 10},
		},
		DeliveryTime: time.Date(2023, time.September, 2, 11, 0, 0, 0, time.UTC),
		CreatedDate:  time.Date(2023, time.September, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestHandleRecord_OrderCreatedSendsOneEmail(t *testing.T) {
	p := newPipeline(t)

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", sampleOrder()))
	require.NoError(t, err)

	require.Len(t, p.mailer.sent, 1)
	sent := p.mailer.sent[0]
	assert.Equal(t, "a@x.com", sent.To)
	assert.Equal(t, []string{"info@halapp.io"}, sent.CC)
	assert.Equal(t, "noreply@halapp.io", sent.From)
	assert.Equal(t, "Sipariş Verildi (Acme)", sent.Subject)
	assert.Contains(t, sent.BodyHTML, "Acme")
	assert.Contains(t, sent.BodyHTML, "Tomato x2")

	assert.Equal(t, 1, p.invRepo.calls)
	assert.Equal(t, 1, p.orgRepo.calls)
	assert.Equal(t, 1, p.store.calls)
}

func TestHandleRecord_SubjectPerType(t *testing.T) {
	tests := []struct {
		notificationType string
		wantSubject      string
	}{
		{"OrderCreated", "Sipariş Verildi (Acme)"},
		{"OrderCanceled", "Sipariş Iptal Edildi (Acme)"},
		{"OrderDelivered", "Sipariş Teslim Edildi (Acme)"},
	}

	for _, tt := range tests {
		t.Run(tt.notificationType, func(t *testing.T) {
			p := newPipeline(t)

			err := p.handler.HandleRecord(context.Background(), recordBody(t, tt.notificationType, sampleOrder()))
			require.NoError(t, err)

			require.Len(t, p.mailer.sent, 1)
			assert.Equal(t, tt.wantSubject, p.mailer.sent[0].Subject)
		})
	}
}

func TestHandleRecord_UnknownTypeIsANoOp(t *testing.T) {
	p := newPipeline(t)

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderShipped", sampleOrder()))
	require.NoError(t, err)

	assert.Zero(t, p.invRepo.calls)
	assert.Zero(t, p.orgRepo.calls)
	assert.Zero(t, p.store.calls)
	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_MalformedRecordFails(t *testing.T) {
	p := newPipeline(t)

	err := p.handler.HandleRecord(context.Background(), []byte("not json"))
	assert.ErrorIs(t, err, events.ErrMalformedEnvelope)
	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_OrganizationNotFoundStopsThePipeline(t *testing.T) {
	p := newPipeline(t)
	p.orgRepo.err = repository.ErrOrganizationNotFound

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", sampleOrder()))
	assert.ErrorIs(t, err, repository.ErrOrganizationNotFound)

	assert.Zero(t, p.store.calls)
	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_TemplateNotFoundStopsDispatch(t *testing.T) {
	p := newPipeline(t)
	p.store.err = repository.ErrTemplateNotFound

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", sampleOrder()))
	assert.ErrorIs(t, err, repository.ErrTemplateNotFound)

	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_InventoryFailureFailsTheRecord(t *testing.T) {
	p := newPipeline(t)
	p.invRepo.err = assert.AnError

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", sampleOrder()))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_DispatchFailureFailsTheRecord(t *testing.T) {
	p := newPipeline(t)
	p.mailer.err = assert.AnError

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", sampleOrder()))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, p.mailer.sent)
}

func TestHandleRecord_MissingInventoryEntryStillSends(t *testing.T) {
	p := newPipeline(t)
	order := sampleOrder()
	order.Items = []models.OrderItem{{ProductID: "missing", Count: 1, Unit: "adet", Price: 4}}

	err := p.handler.HandleRecord(context.Background(), recordBody(t, "OrderCreated", order))
	require.NoError(t, err)

	require.Len(t, p.mailer.sent, 1)
	assert.Contains(t, p.mailer.sent[0].BodyHTML, "missing x1")
}
