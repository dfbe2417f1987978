package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"order-notification-service/internal/events"
	"order-notification-service/internal/mapper"
	"order-notification-service/internal/models"
	"order-notification-service/internal/repository"
	"order-notification-service/internal/services"
)

// OrderHandler routes decoded order notifications to their workflow:
// aggregate context, map to the view model, render, dispatch.
type OrderHandler struct {
	inventories   repository.InventoryRepository
	organizations repository.OrganizationRepository
	renderer      *services.Renderer
	dispatcher    *services.Dispatcher
	orderBaseURL  string
	logger        *logrus.Entry
}

// NewOrderHandler creates a new order notification handler
func NewOrderHandler(
	inventories repository.InventoryRepository,
	organizations repository.OrganizationRepository,
	renderer *services.Renderer,
	dispatcher *services.Dispatcher,
	orderBaseURL string,
) *OrderHandler {
	return &OrderHandler{
		inventories:   inventories,
		organizations: organizations,
		renderer:      renderer,
		dispatcher:    dispatcher,
		orderBaseURL:  orderBaseURL,
		logger:        logrus.WithField("component", "order_handler"),
	}
}

// HandleRecord processes one raw queue record end to end. A returned error
// leaves the record to the queue's redelivery policy; unknown notification
// types are skipped without error so new producer types don't poison the
// queue.
func (h *OrderHandler) HandleRecord(ctx context.Context, body []byte) error {
	msg, err := events.Decode(body)
	if err != nil {
		h.logger.WithError(err).Error("failed to decode record")
		return err
	}
	if !msg.Known() {
		h.logger.WithField("type", string(msg.Type)).Info("ignoring unsupported notification type")
		return nil
	}

	log := h.logger.WithFields(logrus.Fields{
		"type":     string(msg.Type),
		"order_id": msg.Order.ID,
		"subject":  msg.Subject,
	})
	log.Info("processing order notification")

	org, inventories, err := h.aggregate(ctx, msg.Order.OrganizationID)
	if err != nil {
		log.WithError(err).Error("failed to aggregate order context")
		return err
	}

	vm := mapper.ToOrderEmail(msg.Order, *org, inventories, h.orderBaseURL)

	html, err := h.renderer.Render(ctx, msg.Type, vm)
	if err != nil {
		log.WithError(err).Error("failed to render email template")
		return err
	}

	if err := h.dispatcher.Dispatch(ctx, msg.Type, html, *org); err != nil {
		log.WithError(err).Error("failed to dispatch email")
		return err
	}

	return nil
}

// aggregate fetches the organization and the inventory catalog. The two
// reads have no data dependency and run concurrently; both must complete
// before mapping. Neither is retried here, redelivery handles transient
// failures.
func (h *OrderHandler) aggregate(ctx context.Context, organizationID string) (*models.Organization, []models.Inventory, error) {
	type inventoryResult struct {
		inventories []models.Inventory
		err         error
	}
	invCh := make(chan inventoryResult, 1)
	go func() {
		inventories, err := h.inventories.FetchAll(ctx)
		invCh <- inventoryResult{inventories: inventories, err: err}
	}()

	org, orgErr := h.organizations.Fetch(ctx, organizationID)
	inv := <-invCh

	if orgErr != nil {
		return nil, nil, orgErr
	}
	if inv.err != nil {
		return nil, nil, fmt.Errorf("fetch inventories: %w", inv.err)
	}
	return org, inv.inventories, nil
}
