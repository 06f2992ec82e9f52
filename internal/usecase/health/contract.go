package health

import "context"

// Pinger checks a backend's availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClusterInspector reads the search engine's cluster health.
type ClusterInspector interface {
	Pinger
	ClusterHealth(ctx context.Context) (map[string]any, error)
}
