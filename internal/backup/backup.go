package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

// Document is a full portable snapshot of the application's state. AppData
// carries every namespaced record verbatim, so an import restores matches,
// rosters and sessions exactly as exported.
type Document struct {
	Version int                  `json:"version"`
	Date    string               `json:"date"`
	Users   []pelada.UserAccount `json:"users"`
	AppData map[string]string    `json:"appData"`
}

const documentVersion = 1

// Service exports and imports snapshots over the persistence collaborator.
type Service struct {
	kv kvstore.Store
}

// New creates a backup Service.
func New(kv kvstore.Store) *Service {
	return &Service{kv: kv}
}

// Export gathers every key under the application namespace into a Document.
func (s *Service) Export(users []pelada.UserAccount) (Document, error) {
	keys, err := s.kv.Keys(kvstore.Namespace)
	if err != nil {
		return Document{}, fmt.Errorf("failed to list keys: %w", err)
	}

	appData := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok, err := s.kv.Get(key)
		if err != nil {
			return Document{}, fmt.Errorf("failed to read key %q: %w", key, err)
		}
		if ok {
			appData[key] = value
		}
	}

	doc := Document{
		Version: documentVersion,
		Date:    time.Now().UTC().Format(time.RFC3339),
		Users:   users,
		AppData: appData,
	}
	log.Info("Exported backup", "keys", len(appData), "users", len(users))
	return doc, nil
}

// Import wholesale-replaces the application namespace with the document's
// records. Stores must re-Load afterwards to pick up the restored state.
func (s *Service) Import(doc Document) error {
	if doc.Version != documentVersion {
		return fmt.Errorf("unsupported backup version: %d", doc.Version)
	}

	existing, err := s.kv.Keys(kvstore.Namespace)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, key := range existing {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key %q: %w", key, err)
		}
	}

	for key, value := range doc.AppData {
		if err := s.kv.Set(key, value); err != nil {
			return fmt.Errorf("failed to restore key %q: %w", key, err)
		}
	}

	if len(doc.Users) > 0 {
		payload, err := json.Marshal(doc.Users)
		if err != nil {
			return fmt.Errorf("failed to marshal users: %w", err)
		}
		if err := s.kv.Set("pelada_users", string(payload)); err != nil {
			return fmt.Errorf("failed to restore users: %w", err)
		}
	}

	log.Info("Imported backup", "keys", len(doc.AppData), "users", len(doc.Users))
	return nil
}
