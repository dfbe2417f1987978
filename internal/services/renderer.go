package services

import (
	"context"
	"fmt"

	"order-notification-service/internal/events"
	"order-notification-service/internal/mapper"
	"order-notification-service/internal/repository"
	"order-notification-service/internal/template"
)

// Renderer loads the stored HTML template for a notification type and
// interpolates the view model into it. Each type maps to a distinct template
// key supplied through configuration.
type Renderer struct {
	store  repository.TemplateStore
	engine *template.Engine
	keys   map[events.NotificationType]string
}

// NewRenderer creates a renderer with the per-type template keys.
func NewRenderer(store repository.TemplateStore, keys map[events.NotificationType]string) *Renderer {
	return &Renderer{
		store:  store,
		engine: template.NewEngine(),
		keys:   keys,
	}
}

// Render produces the HTML body for one notification. Store failures are
// fatal for the record and are not retried here.
func (r *Renderer) Render(ctx context.Context, t events.NotificationType, vm mapper.OrderEmail) (string, error) {
	key, ok := r.keys[t]
	if !ok || key == "" {
		return "", fmt.Errorf("%w: no template key configured for %s", repository.ErrTemplateNotFound, t)
	}

	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	body, err := r.engine.RenderHTML(raw, vm)
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", key, err)
	}
	return body, nil
}
