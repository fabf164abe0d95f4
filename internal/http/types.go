package http

import (
	"net/http"
	"sync"

	"github.com/mauv0809/pelada-pro/internal/accounts"
	"github.com/mauv0809/pelada-pro/internal/backup"
	"github.com/mauv0809/pelada-pro/internal/config"
	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/metrics"
	"github.com/mauv0809/pelada-pro/internal/notifier"
	"github.com/mauv0809/pelada-pro/internal/pelada"
	"github.com/mauv0809/pelada-pro/internal/roster"
)

type Server struct {
	Users          accounts.UserStore
	KV             kvstore.Store
	Backup         *backup.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	// NewMatchStore builds the account-scoped match store. Swappable in
	// tests.
	NewMatchStore func(accountID string, plan pelada.PlanTier) roster.MatchStore

	mu          sync.Mutex
	matchStores map[string]roster.MatchStore
}
