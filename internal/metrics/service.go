package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TeamDraws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pelada_team_draws_total",
			Help: "The total number of team draws performed.",
		}),
		MatchesReplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pelada_matches_replicated_total",
			Help: "The total number of matches created by weekly replication.",
		}),
		MessagesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pelada_messages_generated_total",
			Help: "The total number of invite and reminder messages generated.",
		}),
		MessageFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pelada_message_fallbacks_total",
			Help: "The total number of messages served from the static fallback template.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pelada_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TeamDraws,
		s.MatchesReplicated,
		s.MessagesGenerated,
		s.MessageFallbacks,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTeamDraws() {
	s.TeamDraws.Inc()
}

func (s *Service) IncMatchesReplicated(count int) {
	s.MatchesReplicated.Add(float64(count))
}

func (s *Service) IncMessagesGenerated() {
	s.MessagesGenerated.Inc()
}

func (s *Service) IncMessageFallbacks() {
	s.MessageFallbacks.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
