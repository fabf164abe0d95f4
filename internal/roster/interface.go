package roster

import "github.com/mauv0809/pelada-pro/internal/pelada"

// MatchStore owns one account's scheduled matches and their rosters. It is
// the only component that writes to the persistence collaborator: every
// mutation is applied to the in-memory collection and immediately flushed
// as a whole.
type MatchStore interface {
	// Load reads persisted state, migrating from the legacy single-match
	// records when no multi-match record exists yet. It never fails on
	// corrupt data; the worst case is starting over with a blank match.
	Load() error

	Matches() []pelada.Match
	ActiveMatch() pelada.Match

	CreateMatch() (string, error)
	Select(id string) error
	DeleteMatch(id string) error
	UpdateDetails(id string, details pelada.MatchDetails) error
	SetPlayers(id string, players []pelada.Player) error

	AddPlayer(matchID string, player pelada.Player) error
	UpdatePlayer(matchID string, player pelada.Player) error
	RemovePlayer(matchID, playerID string) error
	ToggleConfirmed(matchID, playerID string) (bool, error)

	// Replicate appends monthsAhead*4 weekly copies of the active match,
	// each one week after the previous, with every cloned player's
	// confirmation reset. It returns how many matches were created.
	Replicate(monthsAhead int) (int, error)
}
