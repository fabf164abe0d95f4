package http

import (
	"fmt"
	"net/http"

	"github.com/mauv0809/pelada-pro/internal/accounts"
	"github.com/mauv0809/pelada-pro/internal/backup"
	"github.com/mauv0809/pelada-pro/internal/config"
	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/metrics"
	"github.com/mauv0809/pelada-pro/internal/notifier"
	"github.com/mauv0809/pelada-pro/internal/pelada"
	"github.com/mauv0809/pelada-pro/internal/roster"
)

func NewServer(users accounts.UserStore, kv kvstore.Store, backupSvc *backup.Service, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, newMatchStore func(accountID string, plan pelada.PlanTier) roster.MatchStore) *Server {
	server := &Server{
		Users:          users,
		KV:             kv,
		Backup:         backupSvc,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		NewMatchStore:  newMatchStore,
		matchStores:    make(map[string]roster.MatchStore),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/login", Chain(s.LoginHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/create", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/select", Chain(s.SelectMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/delete", Chain(s.DeleteMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/details", Chain(s.UpdateDetailsHandler(), paramsMiddleware))
	s.Router.Handle("/matches/replicate", Chain(s.ReplicateHandler(), paramsMiddleware))
	s.Router.Handle("/players/add", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/toggle", Chain(s.TogglePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/draw", Chain(s.DrawHandler(), paramsMiddleware))
	s.Router.Handle("/invite", Chain(s.InviteHandler(), paramsMiddleware))
	s.Router.Handle("/reminder", Chain(s.ReminderHandler(), paramsMiddleware))
	s.Router.Handle("/backup/export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("/backup/import", Chain(s.ImportHandler(), paramsMiddleware))
	s.Router.Handle("/users", Chain(s.UsersHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// matchStore returns the cached store for an account, loading it on first
// use. The plan cap follows the owning account.
func (s *Server) matchStore(accountID string) (roster.MatchStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.matchStores[accountID]; ok {
		return store, nil
	}

	user, err := s.Users.Get(accountID)
	if err != nil {
		return nil, fmt.Errorf("unknown account %q: %w", accountID, err)
	}

	store := s.NewMatchStore(user.ID, user.Plan)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load matches for account %q: %w", accountID, err)
	}
	s.matchStores[accountID] = store
	return store, nil
}

// resetMatchStores drops all cached stores so the next request reloads from
// persistence. Used after a backup import.
func (s *Server) resetMatchStores() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchStores = make(map[string]roster.MatchStore)
}
