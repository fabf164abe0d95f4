package pelada

// Position is a player's field position. The wire values are kept in
// Portuguese so rosters stored by the legacy web client parse unchanged.
type Position string

const (
	PositionGoalkeeper Position = "Goleiro"
	PositionDefender   Position = "Zagueiro"
	PositionMidfielder Position = "Meio"
	PositionForward    Position = "Atacante"
)

// PlayerType distinguishes regulars from guests. Informational only; the
// balancer does not place players by type.
type PlayerType string

const (
	TypeRegular PlayerType = "Efetivo"
	TypeGuest   PlayerType = "Convidado"
)

// Role is an account's access role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Player is a roster entry. Owned by exactly one Match.
type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Position  Position   `json:"position"`
	Level     int        `json:"level"` // 1 (lowest) to 5 (highest)
	Type      PlayerType `json:"type"`
	Confirmed bool       `json:"confirmed"`
}

// MatchDetails holds the schedule and setup of a single match.
type MatchDetails struct {
	Date           string `json:"date"` // YYYY-MM-DD, blank until set
	Time           string `json:"time"`
	Location       string `json:"location"`
	OrganizerPhone string `json:"organizerPhone"`
	TeamsCount     int    `json:"teamsCount"`
}

// Match is one scheduled pelada with its roster.
type Match struct {
	ID        string       `json:"id"`
	Details   MatchDetails `json:"details"`
	Players   []Player     `json:"players"`
	CreatedAt int64        `json:"createdAt"` // unix seconds, tie-breaks "most recent"
}

// Clone returns a deep value copy of the match. Mutating the copy's roster
// never affects the original.
func (m Match) Clone() Match {
	out := m
	out.Players = make([]Player, len(m.Players))
	copy(out.Players, m.Players)
	return out
}

// TeamStats summarizes one drawn team.
type TeamStats struct {
	AvgLevel     float64 `json:"avgLevel"`
	TotalPlayers int     `json:"totalPlayers"`
}

// Team is a transient draw result. Never persisted.
type Team struct {
	Name    string    `json:"name"`
	Players []Player  `json:"players"`
	Stats   TeamStats `json:"stats"`
}

// SortResult is the outcome of a team draw.
type SortResult struct {
	Teams    []Team `json:"teams"`
	Analysis string `json:"analysis"`
}

// UserAccount is an organizer account managed by the admin dashboard.
type UserAccount struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Plan     PlanTier `json:"plan"`
	Role     Role     `json:"role"`
}
