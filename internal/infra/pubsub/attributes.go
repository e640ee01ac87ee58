package pubsub

import "saferoute/internal/domain/entity"

// eventAttributes are the message attributes used for subscription filtering and tracing.
func eventAttributes(event *entity.NavigationEvent) map[string]string {
	attributes := map[string]string{
		"session_id": event.SessionID,
		"event_type": string(event.Type),
		"state":      string(event.State),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
