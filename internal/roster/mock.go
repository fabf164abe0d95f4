package roster

import "github.com/mauv0809/pelada-pro/internal/pelada"

// MockStore is a configurable spy implementation of MatchStore for tests.
type MockStore struct {
	LoadFunc            func() error
	MatchesFunc         func() []pelada.Match
	ActiveMatchFunc     func() pelada.Match
	CreateMatchFunc     func() (string, error)
	SelectFunc          func(id string) error
	DeleteMatchFunc     func(id string) error
	UpdateDetailsFunc   func(id string, details pelada.MatchDetails) error
	SetPlayersFunc      func(id string, players []pelada.Player) error
	AddPlayerFunc       func(matchID string, player pelada.Player) error
	UpdatePlayerFunc    func(matchID string, player pelada.Player) error
	RemovePlayerFunc    func(matchID, playerID string) error
	ToggleConfirmedFunc func(matchID, playerID string) (bool, error)
	ReplicateFunc       func(monthsAhead int) (int, error)

	// Call records
	AddPlayerCalls []pelada.Player
	ReplicateCalls []int
	SelectCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Load() error {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return nil
}

func (m *MockStore) Matches() []pelada.Match {
	if m.MatchesFunc != nil {
		return m.MatchesFunc()
	}
	return nil
}

func (m *MockStore) ActiveMatch() pelada.Match {
	if m.ActiveMatchFunc != nil {
		return m.ActiveMatchFunc()
	}
	return pelada.Match{}
}

func (m *MockStore) CreateMatch() (string, error) {
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc()
	}
	return "", nil
}

func (m *MockStore) Select(id string) error {
	m.SelectCalls = append(m.SelectCalls, id)
	if m.SelectFunc != nil {
		return m.SelectFunc(id)
	}
	return nil
}

func (m *MockStore) DeleteMatch(id string) error {
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(id)
	}
	return nil
}

func (m *MockStore) UpdateDetails(id string, details pelada.MatchDetails) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(id, details)
	}
	return nil
}

func (m *MockStore) SetPlayers(id string, players []pelada.Player) error {
	if m.SetPlayersFunc != nil {
		return m.SetPlayersFunc(id, players)
	}
	return nil
}

func (m *MockStore) AddPlayer(matchID string, player pelada.Player) error {
	m.AddPlayerCalls = append(m.AddPlayerCalls, player)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(matchID, player)
	}
	return nil
}

func (m *MockStore) UpdatePlayer(matchID string, player pelada.Player) error {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(matchID, player)
	}
	return nil
}

func (m *MockStore) RemovePlayer(matchID, playerID string) error {
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(matchID, playerID)
	}
	return nil
}

func (m *MockStore) ToggleConfirmed(matchID, playerID string) (bool, error) {
	if m.ToggleConfirmedFunc != nil {
		return m.ToggleConfirmedFunc(matchID, playerID)
	}
	return false, nil
}

func (m *MockStore) Replicate(monthsAhead int) (int, error) {
	m.ReplicateCalls = append(m.ReplicateCalls, monthsAhead)
	if m.ReplicateFunc != nil {
		return m.ReplicateFunc(monthsAhead)
	}
	return 0, nil
}
