package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTeamDraws()
	IncMatchesReplicated(count int)
	IncMessagesGenerated()
	IncMessageFallbacks()
	SetStartupTime(duration float64)
}
