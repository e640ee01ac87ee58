package constants

// Pub/Sub provider names accepted in pubsub.provider
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
