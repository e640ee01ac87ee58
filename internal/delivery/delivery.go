// Package delivery contains the inbound adapters that drive the use cases.
package delivery

import "context"

// Delivery is a long-running inbound adapter such as the HTTP API or the MQTT
// GPS feed. Serve blocks until the adapter stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
