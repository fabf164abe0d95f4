package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/pelada-pro/internal/accounts"
	"github.com/mauv0809/pelada-pro/internal/backup"
	"github.com/mauv0809/pelada-pro/internal/balancer"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

const sessionKey = "pelada_session_id"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeStoreError maps the domain error taxonomy onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pelada.ErrLimitExceeded), errors.Is(err, pelada.ErrLastMatch):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, pelada.ErrNoBaseDate):
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, pelada.ErrMatchNotFound), errors.Is(err, pelada.ErrPlayerNotFound), errors.Is(err, accounts.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pelada.ErrUnauthorized), errors.Is(err, accounts.ErrAdminProtected):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		log.Error("Unexpected store error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := s.Users.Authenticate(req.Email, req.Password)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		if err := s.KV.Set(sessionKey, user.ID); err != nil {
			log.Warn("Failed to persist session", "error", err)
		}
		log.Info("User logged in", "userID", user.ID)
		user.Password = ""
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	type response struct {
		Matches       []pelada.Match `json:"matches"`
		ActiveMatchID string         `json:"activeMatchId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, response{
			Matches:       store.Matches(),
			ActiveMatchID: store.ActiveMatch().ID,
		})
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		id, err := store.CreateMatch()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Created match", "matchID", id)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func (s *Server) SelectMatchHandler() http.HandlerFunc {
	type request struct {
		ID string `json:"id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.Select(req.ID); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	type request struct {
		ID string `json:"id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.DeleteMatch(req.ID); err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Deleted match", "matchID", req.ID)
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) UpdateDetailsHandler() http.HandlerFunc {
	type request struct {
		ID      string              `json:"id"`
		Details pelada.MatchDetails `json:"details"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.UpdateDetails(req.ID, req.Details); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) ReplicateHandler() http.HandlerFunc {
	type request struct {
		MonthsAhead int `json:"monthsAhead"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		created, err := store.Replicate(req.MonthsAhead)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncMatchesReplicated(created)
		log.Info("Replicated match", "created", created, "monthsAhead", req.MonthsAhead)
		writeJSON(w, http.StatusOK, map[string]int{"created": created})
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	type request struct {
		MatchID string        `json:"matchId"`
		Player  pelada.Player `json:"player"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.AddPlayer(req.MatchID, req.Player); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	type request struct {
		MatchID string        `json:"matchId"`
		Player  pelada.Player `json:"player"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.UpdatePlayer(req.MatchID, req.Player); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"matchId"`
		PlayerID string `json:"playerId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.RemovePlayer(req.MatchID, req.PlayerID); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) TogglePlayerHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"matchId"`
		PlayerID string `json:"playerId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		confirmed, err := store.ToggleConfirmed(req.MatchID, req.PlayerID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"confirmed": confirmed})
	}
}

func (s *Server) DrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}

		match := store.ActiveMatch()
		var confirmed []pelada.Player
		for _, p := range match.Players {
			if p.Confirmed {
				confirmed = append(confirmed, p)
			}
		}

		// A draw needs at least two players per team to mean anything.
		minPlayers := match.Details.TeamsCount * 2
		if len(confirmed) < minPlayers {
			http.Error(w, fmt.Sprintf("need at least %d confirmed players to draw teams", minPlayers), http.StatusPreconditionFailed)
			return
		}

		result := balancer.Balance(confirmed, match.Details.TeamsCount)
		s.Metrics.IncTeamDraws()
		log.Info("Drew teams", "matchID", match.ID, "teams", len(result.Teams), "players", len(confirmed))
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) InviteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		match := store.ActiveMatch()
		message := s.Notifier.InviteMessage(r.Context(), match.Details)
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
	}
}

func (s *Server) ReminderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := s.matchStore(accountFromContext(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		match := store.ActiveMatch()
		var confirmed []pelada.Player
		for _, p := range match.Players {
			if p.Confirmed {
				confirmed = append(confirmed, p)
			}
		}
		message := s.Notifier.ReminderMessage(r.Context(), match.Details, confirmed)
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.Backup.Export(s.Users.Users())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc backup.Document
		if !decodeBody(w, r, &doc) {
			return
		}
		if err := s.Backup.Import(doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Drop cached state so every store reloads the imported records.
		s.resetMatchStores()
		if err := s.Users.Load(); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) UsersHandler() http.HandlerFunc {
	type deleteRequest struct {
		ID string `json:"id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			users := s.Users.Users()
			for i := range users {
				users[i].Password = ""
			}
			writeJSON(w, http.StatusOK, users)
		case http.MethodPost:
			var user pelada.UserAccount
			if !decodeBody(w, r, &user) {
				return
			}
			added, err := s.Users.Add(user)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			added.Password = ""
			writeJSON(w, http.StatusCreated, added)
		case http.MethodDelete:
			var req deleteRequest
			if !decodeBody(w, r, &req) {
				return
			}
			if err := s.Users.Delete(req.ID); err != nil {
				writeStoreError(w, err)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
