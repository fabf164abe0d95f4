package roster

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

const (
	matchesKeyPrefix     = "pelada_matches_"
	activeMatchKeyPrefix = "pelada_active_match_"

	// Keys written by the legacy single-match client. Read once during
	// migration, never written again.
	legacyDetailsKeyPrefix = "pelada_match_details_"
	legacyPlayersKeyPrefix = "pelada_players_"
)

const matchesPerMonth = 4

// store keeps one account's matches in memory and flushes the whole
// collection on every mutation.
type store struct {
	kv        kvstore.Store
	accountID string
	plan      pelada.PlanTier
	clock     clockwork.Clock

	mu       sync.RWMutex
	matches  []pelada.Match
	activeID string
}

// New creates a MatchStore for one account. Call Load before anything else.
func New(kv kvstore.Store, accountID string, plan pelada.PlanTier, clock clockwork.Clock) MatchStore {
	return &store{
		kv:        kv,
		accountID: accountID,
		plan:      plan,
		clock:     clock,
	}
}

func (s *store) matchesKey() string {
	return matchesKeyPrefix + s.accountID
}

func (s *store) activeKey() string {
	return activeMatchKeyPrefix + s.accountID
}

func (s *store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loaded, err := s.loadMultiMatch(); err != nil {
		return err
	} else if loaded {
		return nil
	}

	if migrated, err := s.migrateLegacy(); err != nil {
		return err
	} else if migrated {
		log.Info("Migrated legacy single-match records", "accountID", s.accountID)
		return nil
	}

	_, err := s.createMatchLocked()
	return err
}

// loadMultiMatch restores state from the multi-match record. It reports
// false when the record is absent, corrupt or empty, so the caller can fall
// through to migration.
func (s *store) loadMultiMatch() (bool, error) {
	raw, ok, err := s.kv.Get(s.matchesKey())
	if err != nil {
		return false, fmt.Errorf("failed to read matches: %w", err)
	}
	if !ok {
		return false, nil
	}

	var matches []pelada.Match
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		log.Warn("Discarding corrupt matches record", "accountID", s.accountID, "error", err)
		return false, nil
	}
	if len(matches) == 0 {
		return false, nil
	}

	s.matches = matches
	s.activeID = s.resolveActive()
	return true, nil
}

// resolveActive returns the persisted active match id if it still exists,
// otherwise the most recently created match.
func (s *store) resolveActive() string {
	raw, ok, err := s.kv.Get(s.activeKey())
	if err == nil && ok {
		if _, found := s.findLocked(raw); found {
			return raw
		}
	}

	latest := s.matches[0]
	for _, m := range s.matches[1:] {
		if m.CreatedAt > latest.CreatedAt {
			latest = m
		}
	}
	return latest.ID
}

// migrateLegacy builds a single match from the legacy detail and player
// records. Either blob failing to parse degrades to its zero value; only a
// completely absent detail record reports false.
func (s *store) migrateLegacy() (bool, error) {
	raw, ok, err := s.kv.Get(legacyDetailsKeyPrefix + s.accountID)
	if err != nil {
		return false, fmt.Errorf("failed to read legacy match details: %w", err)
	}
	if !ok {
		return false, nil
	}

	details := blankDetails()
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		log.Warn("Discarding corrupt legacy details record", "accountID", s.accountID, "error", err)
		details = blankDetails()
	}

	var players []pelada.Player
	if raw, ok, err := s.kv.Get(legacyPlayersKeyPrefix + s.accountID); err != nil {
		return false, fmt.Errorf("failed to read legacy players: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &players); err != nil {
			log.Warn("Discarding corrupt legacy players record", "accountID", s.accountID, "error", err)
			players = nil
		}
	}

	match := pelada.Match{
		ID:        uuid.New().String(),
		Details:   details,
		Players:   players,
		CreatedAt: s.clock.Now().Unix(),
	}
	s.matches = []pelada.Match{match}
	s.activeID = match.ID
	if err := s.flushLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func blankDetails() pelada.MatchDetails {
	return pelada.MatchDetails{TeamsCount: 2}
}

// flushLocked persists the whole collection and the active selection.
// Callers must hold the write lock.
func (s *store) flushLocked() error {
	payload, err := json.Marshal(s.matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	if err := s.kv.Set(s.matchesKey(), string(payload)); err != nil {
		return fmt.Errorf("failed to persist matches: %w", err)
	}
	if err := s.kv.Set(s.activeKey(), s.activeID); err != nil {
		return fmt.Errorf("failed to persist active match: %w", err)
	}
	return nil
}

func (s *store) findLocked(id string) (int, bool) {
	for i := range s.matches {
		if s.matches[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *store) Matches() []pelada.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pelada.Match, len(s.matches))
	for i, m := range s.matches {
		out[i] = m.Clone()
	}
	return out
}

func (s *store) ActiveMatch() pelada.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.findLocked(s.activeID); ok {
		return s.matches[i].Clone()
	}
	if len(s.matches) > 0 {
		return s.matches[0].Clone()
	}
	return pelada.Match{Details: blankDetails()}
}

func (s *store) CreateMatch() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createMatchLocked()
}

func (s *store) createMatchLocked() (string, error) {
	match := pelada.Match{
		ID:        uuid.New().String(),
		Details:   blankDetails(),
		Players:   []pelada.Player{},
		CreatedAt: s.clock.Now().Unix(),
	}
	s.matches = append(s.matches, match)
	s.activeID = match.ID
	if err := s.flushLocked(); err != nil {
		return "", err
	}
	return match.ID, nil
}

func (s *store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findLocked(id); !ok {
		return pelada.ErrMatchNotFound
	}
	s.activeID = id
	return s.flushLocked()
}

func (s *store) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(id)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	if len(s.matches) == 1 {
		return pelada.ErrLastMatch
	}
	s.matches = append(s.matches[:i], s.matches[i+1:]...)
	if s.activeID == id {
		s.activeID = s.matches[0].ID
	}
	return s.flushLocked()
}

func (s *store) UpdateDetails(id string, details pelada.MatchDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(id)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	s.matches[i].Details = details
	return s.flushLocked()
}

func (s *store) SetPlayers(id string, players []pelada.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(id)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	s.matches[i].Players = append([]pelada.Player(nil), players...)
	return s.flushLocked()
}

func (s *store) AddPlayer(matchID string, player pelada.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(matchID)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	if len(s.matches[i].Players) >= pelada.PlanLimit(s.plan) {
		return pelada.ErrLimitExceeded
	}
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	s.matches[i].Players = append(s.matches[i].Players, player)
	return s.flushLocked()
}

func (s *store) UpdatePlayer(matchID string, player pelada.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(matchID)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	for j := range s.matches[i].Players {
		if s.matches[i].Players[j].ID == player.ID {
			s.matches[i].Players[j] = player
			return s.flushLocked()
		}
	}
	return pelada.ErrPlayerNotFound
}

func (s *store) RemovePlayer(matchID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(matchID)
	if !ok {
		return pelada.ErrMatchNotFound
	}
	players := s.matches[i].Players
	for j := range players {
		if players[j].ID == playerID {
			s.matches[i].Players = append(players[:j], players[j+1:]...)
			return s.flushLocked()
		}
	}
	return pelada.ErrPlayerNotFound
}

func (s *store) ToggleConfirmed(matchID, playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(matchID)
	if !ok {
		return false, pelada.ErrMatchNotFound
	}
	for j := range s.matches[i].Players {
		if s.matches[i].Players[j].ID == playerID {
			s.matches[i].Players[j].Confirmed = !s.matches[i].Players[j].Confirmed
			if err := s.flushLocked(); err != nil {
				return false, err
			}
			return s.matches[i].Players[j].Confirmed, nil
		}
	}
	return false, pelada.ErrPlayerNotFound
}

func (s *store) Replicate(monthsAhead int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findLocked(s.activeID)
	if !ok {
		return 0, pelada.ErrMatchNotFound
	}
	base := s.matches[i]
	if base.Details.Date == "" {
		return 0, pelada.ErrNoBaseDate
	}
	baseDate, err := time.Parse("2006-01-02", base.Details.Date)
	if err != nil {
		return 0, fmt.Errorf("failed to parse active match date %q: %w", base.Details.Date, err)
	}

	count := monthsAhead * matchesPerMonth
	if count <= 0 {
		return 0, nil
	}

	now := s.clock.Now().Unix()
	clones := make([]pelada.Match, 0, count)
	for n := 1; n <= count; n++ {
		clone := base.Clone()
		clone.ID = uuid.New().String()
		clone.Details.Date = baseDate.AddDate(0, 0, 7*n).Format("2006-01-02")
		// Offset keeps createdAt strictly ordered within the batch.
		clone.CreatedAt = now + int64(n)
		for j := range clone.Players {
			clone.Players[j].Confirmed = false
		}
		clones = append(clones, clone)
	}

	s.matches = append(s.matches, clones...)
	if err := s.flushLocked(); err != nil {
		return 0, err
	}
	return count, nil
}
