package roster

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

const testAccount = "acct-1"

func newTestStore(t *testing.T, kv *kvstore.MockStore, plan pelada.PlanTier) MatchStore {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(kv, testAccount, plan, clock)
	require.NoError(t, s.Load())
	return s
}

func TestLoad_FreshAccountStartsWithOneBlankMatch(t *testing.T) {
	kv := kvstore.NewMock()
	s := newTestStore(t, kv, pelada.TierPelada)

	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Empty(t, matches[0].Players)
	assert.Equal(t, "", matches[0].Details.Date)
	assert.Equal(t, 2, matches[0].Details.TeamsCount)
	assert.Equal(t, matches[0].ID, s.ActiveMatch().ID)

	// The blank match is persisted immediately.
	raw, ok, err := kv.Get("pelada_matches_" + testAccount)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, matches[0].ID)
}

func TestLoad_MigratesLegacyRecords(t *testing.T) {
	kv := kvstore.NewMock()
	details := pelada.MatchDetails{Date: "2024-03-10", Time: "19:00", Location: "Arena Central", TeamsCount: 2}
	players := []pelada.Player{
		{ID: "p1", Name: "Rafael", Position: pelada.PositionGoalkeeper, Level: 3, Type: pelada.TypeRegular, Confirmed: true},
		{ID: "p2", Name: "Bruno", Position: pelada.PositionForward, Level: 5, Type: pelada.TypeGuest},
	}
	rawDetails, err := json.Marshal(details)
	require.NoError(t, err)
	rawPlayers, err := json.Marshal(players)
	require.NoError(t, err)
	kv.Seed("pelada_match_details_"+testAccount, string(rawDetails))
	kv.Seed("pelada_players_"+testAccount, string(rawPlayers))

	s := newTestStore(t, kv, pelada.TierPelada)

	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, details, matches[0].Details)
	assert.Equal(t, players, matches[0].Players)
	assert.NotEmpty(t, matches[0].ID)

	// A second load sees the migrated record and leaves it alone.
	again := newTestStore(t, kv, pelada.TierPelada)
	assert.Equal(t, matches[0].ID, again.Matches()[0].ID)
}

func TestLoad_MultiMatchRecordWinsOverLegacy(t *testing.T) {
	kv := kvstore.NewMock()
	existing := []pelada.Match{{
		ID:        "m1",
		Details:   pelada.MatchDetails{Date: "2024-05-01", TeamsCount: 3},
		Players:   []pelada.Player{{ID: "p1", Name: "Diego", Level: 4}},
		CreatedAt: 100,
	}}
	raw, err := json.Marshal(existing)
	require.NoError(t, err)
	kv.Seed("pelada_matches_"+testAccount, string(raw))
	kv.Seed("pelada_match_details_"+testAccount, `{"date":"2020-01-01"}`)

	s := newTestStore(t, kv, pelada.TierPelada)

	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
	assert.Equal(t, "2024-05-01", matches[0].Details.Date)
}

func TestLoad_CorruptBlobsFallBackToBlankMatch(t *testing.T) {
	kv := kvstore.NewMock()
	kv.Seed("pelada_matches_"+testAccount, "{not json")
	kv.Seed("pelada_match_details_"+testAccount, "also not json")
	kv.Seed("pelada_players_"+testAccount, "[broken")

	s := newTestStore(t, kv, pelada.TierPelada)

	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "", matches[0].Details.Date)
	assert.Empty(t, matches[0].Players)
}

func TestLoad_StaleActiveIDFallsBackToMostRecent(t *testing.T) {
	kv := kvstore.NewMock()
	existing := []pelada.Match{
		{ID: "old", CreatedAt: 100},
		{ID: "new", CreatedAt: 200},
	}
	raw, err := json.Marshal(existing)
	require.NoError(t, err)
	kv.Seed("pelada_matches_"+testAccount, string(raw))
	kv.Seed("pelada_active_match_"+testAccount, "gone")

	s := newTestStore(t, kv, pelada.TierPelada)

	assert.Equal(t, "new", s.ActiveMatch().ID)
}

func TestCreateMatch_BecomesActive(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)

	id, err := s.CreateMatch()
	require.NoError(t, err)

	assert.Len(t, s.Matches(), 2)
	assert.Equal(t, id, s.ActiveMatch().ID)
}

func TestSelect_UnknownMatch(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)

	err := s.Select("nope")
	assert.ErrorIs(t, err, pelada.ErrMatchNotFound)
}

func TestDeleteMatch_LastMatchIsProtected(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	only := s.ActiveMatch().ID

	err := s.DeleteMatch(only)
	assert.ErrorIs(t, err, pelada.ErrLastMatch)
	assert.Len(t, s.Matches(), 1)
}

func TestDeleteMatch_ActiveMovesToFirstRemaining(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	first := s.ActiveMatch().ID
	second, err := s.CreateMatch()
	require.NoError(t, err)
	require.Equal(t, second, s.ActiveMatch().ID)

	require.NoError(t, s.DeleteMatch(second))

	assert.Len(t, s.Matches(), 1)
	assert.Equal(t, first, s.ActiveMatch().ID)
}

func TestAddPlayer_EnforcesPlanLimit(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID

	for i := 0; i < pelada.PlanLimit(pelada.TierPelada); i++ {
		require.NoError(t, s.AddPlayer(matchID, pelada.Player{Name: "Jogador", Level: 3}))
	}

	err := s.AddPlayer(matchID, pelada.Player{Name: "Um a mais", Level: 3})
	assert.ErrorIs(t, err, pelada.ErrLimitExceeded)
	assert.Len(t, s.ActiveMatch().Players, pelada.PlanLimit(pelada.TierPelada))
}

func TestAddPlayer_AssignsIDWhenMissing(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierAmador)
	matchID := s.ActiveMatch().ID

	require.NoError(t, s.AddPlayer(matchID, pelada.Player{Name: "Carlos", Level: 2}))

	players := s.ActiveMatch().Players
	require.Len(t, players, 1)
	assert.NotEmpty(t, players[0].ID)
}

func TestUpdatePlayer_UnknownPlayer(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID

	err := s.UpdatePlayer(matchID, pelada.Player{ID: "ghost", Name: "Ninguem"})
	assert.ErrorIs(t, err, pelada.ErrPlayerNotFound)
}

func TestToggleConfirmed_Flips(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p1", Name: "Lucas", Level: 4}))

	confirmed, err := s.ToggleConfirmed(matchID, "p1")
	require.NoError(t, err)
	assert.True(t, confirmed)

	confirmed, err = s.ToggleConfirmed(matchID, "p1")
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestRemovePlayer(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p1", Name: "Lucas", Level: 4}))
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p2", Name: "Pedro", Level: 2}))

	require.NoError(t, s.RemovePlayer(matchID, "p1"))

	players := s.ActiveMatch().Players
	require.Len(t, players, 1)
	assert.Equal(t, "p2", players[0].ID)

	err := s.RemovePlayer(matchID, "p1")
	assert.ErrorIs(t, err, pelada.ErrPlayerNotFound)
}

func TestSetPlayers_ReplacesRoster(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p1", Name: "Lucas", Level: 4}))

	replacement := []pelada.Player{
		{ID: "p2", Name: "Pedro", Level: 2},
		{ID: "p3", Name: "Thiago", Level: 5},
	}
	require.NoError(t, s.SetPlayers(matchID, replacement))
	assert.Equal(t, replacement, s.ActiveMatch().Players)

	err := s.SetPlayers("ghost", replacement)
	assert.ErrorIs(t, err, pelada.ErrMatchNotFound)
}

func TestReplicate_WeeklyClones(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierAmador)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.UpdateDetails(matchID, pelada.MatchDetails{
		Date: "2024-01-01", Time: "20:00", Location: "Quadra 3", TeamsCount: 2,
	}))
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p1", Name: "Lucas", Level: 4, Confirmed: true}))
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p2", Name: "Pedro", Level: 2}))

	count, err := s.Replicate(1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	matches := s.Matches()
	require.Len(t, matches, 5)

	wantDates := []string{"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}
	for i, clone := range matches[1:] {
		assert.Equal(t, wantDates[i], clone.Details.Date)
		assert.Equal(t, "20:00", clone.Details.Time)
		assert.Equal(t, "Quadra 3", clone.Details.Location)
		assert.NotEqual(t, matchID, clone.ID)
		require.Len(t, clone.Players, 2)
		assert.Equal(t, "p1", clone.Players[0].ID)
		assert.False(t, clone.Players[0].Confirmed, "cloned confirmations must reset")
		assert.False(t, clone.Players[1].Confirmed)
	}

	// The base match is untouched.
	assert.Equal(t, "2024-01-01", s.ActiveMatch().Details.Date)
	assert.True(t, s.ActiveMatch().Players[0].Confirmed)
}

func TestReplicate_RequiresBaseDate(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)

	_, err := s.Replicate(1)
	assert.ErrorIs(t, err, pelada.ErrNoBaseDate)
	assert.Len(t, s.Matches(), 1)
}

func TestReplicate_MonthsScaleLinearly(t *testing.T) {
	s := newTestStore(t, kvstore.NewMock(), pelada.TierPelada)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.UpdateDetails(matchID, pelada.MatchDetails{Date: "2024-06-01", TeamsCount: 2}))

	count, err := s.Replicate(3)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.Len(t, s.Matches(), 13)
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := kvstore.NewMock()
	s := newTestStore(t, kv, pelada.TierAmador)
	matchID := s.ActiveMatch().ID
	require.NoError(t, s.UpdateDetails(matchID, pelada.MatchDetails{Date: "2024-02-15", Location: "Campo do Flamengo", TeamsCount: 3}))
	require.NoError(t, s.AddPlayer(matchID, pelada.Player{ID: "p1", Name: "Thiago", Position: pelada.PositionMidfielder, Level: 5}))
	second, err := s.CreateMatch()
	require.NoError(t, err)
	require.NoError(t, s.Select(matchID))

	reloaded := newTestStore(t, kv, pelada.TierAmador)

	matches := reloaded.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, matchID, reloaded.ActiveMatch().ID)
	assert.Equal(t, "Campo do Flamengo", reloaded.ActiveMatch().Details.Location)
	require.Len(t, reloaded.ActiveMatch().Players, 1)
	assert.Equal(t, "Thiago", reloaded.ActiveMatch().Players[0].Name)
	_, found := findByID(matches, second)
	assert.True(t, found)
}

func findByID(matches []pelada.Match, id string) (pelada.Match, bool) {
	for _, m := range matches {
		if m.ID == id {
			return m, true
		}
	}
	return pelada.Match{}, false
}
