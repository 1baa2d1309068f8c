package services

import (
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
)

// Routing keys of the domain events.
const (
	EventRecipeCreated      = "recipe.created"
	EventRecipeDeleted      = "recipe.deleted"
	EventShortcodeExhausted = "shortcode.exhausted"
)

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	PublishEvent(routingKey string, payload interface{}) error
}

// publish sends an event when a publisher is configured. Failures are
// logged and never reach the caller.
func publish(events EventPublisher, routingKey string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(routingKey, payload); err != nil {
		metrics.EventsPublished.WithLabelValues(routingKey, "error").Inc()
		logging.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
		return
	}
	metrics.EventsPublished.WithLabelValues(routingKey, "ok").Inc()
}
