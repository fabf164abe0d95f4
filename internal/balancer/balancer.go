// Package balancer splits confirmed players into skill-balanced teams.
//
// The draw is fully deterministic: the same players in the same order always
// produce the same teams, so an organizer can re-open the app and show the
// group an identical result.
package balancer

import (
	"fmt"
	"sort"

	"github.com/mauv0809/pelada-pro/internal/pelada"
)

// teamNames is the display rotation for drawn teams. Counts beyond the
// rotation fall back to a numbered label.
var teamNames = []string{"Colete", "Sem Colete", "Meião", "Chuteira"}

const analysisText = "Sorteio realizado utilizando o método matemático 'Snake Draft'. " +
	"Jogadores ordenados por nível técnico e distribuídos alternadamente para " +
	"garantir médias de habilidade idênticas."

// Balance partitions players into teamCount teams with per-team average
// level as even as the snake draft allows. Goalkeepers are seeded first,
// round-robin, so no team gets a second keeper before every team has one.
// A teamCount below 2 is clamped to 2; a draw into fewer teams is
// meaningless. Teams beyond the player count come back empty.
func Balance(players []pelada.Player, teamCount int) pelada.SortResult {
	if teamCount < 2 {
		teamCount = 2
	}

	teams := make([]pelada.Team, teamCount)
	for i := range teams {
		teams[i].Players = []pelada.Player{}
	}

	var goalkeepers, outfielders []pelada.Player
	for _, p := range players {
		if p.Position == pelada.PositionGoalkeeper {
			goalkeepers = append(goalkeepers, p)
		} else {
			outfielders = append(outfielders, p)
		}
	}

	sortByLevel(goalkeepers)
	sortByLevel(outfielders)

	for i, gk := range goalkeepers {
		teams[i%teamCount].Players = append(teams[i%teamCount].Players, gk)
	}

	// Snake pattern: 0,1,...,last,last-1,...,0,1,... so consecutive strong
	// players never pile onto the same team index.
	teamIndex := 0
	direction := 1
	for _, p := range outfielders {
		teams[teamIndex].Players = append(teams[teamIndex].Players, p)

		teamIndex += direction
		if teamIndex >= teamCount {
			teamIndex = teamCount - 1
			direction = -1
		} else if teamIndex < 0 {
			teamIndex = 0
			direction = 1
		}
	}

	for i := range teams {
		teams[i].Name = teamName(i)
		teams[i].Stats = teamStats(teams[i].Players)
	}

	return pelada.SortResult{
		Teams:    teams,
		Analysis: analysisText,
	}
}

// sortByLevel orders players by level descending, breaking ties by name
// ascending. The sort is stable, so equal level+name keeps input order and
// the draw stays deterministic.
func sortByLevel(players []pelada.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Level != players[j].Level {
			return players[i].Level > players[j].Level
		}
		return players[i].Name < players[j].Name
	})
}

func teamName(index int) string {
	if index < len(teamNames) {
		return teamNames[index]
	}
	return fmt.Sprintf("Time %d", index+1)
}

func teamStats(players []pelada.Player) pelada.TeamStats {
	stats := pelada.TeamStats{TotalPlayers: len(players)}
	if len(players) == 0 {
		return stats
	}
	total := 0
	for _, p := range players {
		total += p.Level
	}
	stats.AvgLevel = float64(total) / float64(len(players))
	return stats
}
