package rest

import (
	"errors"
	"net/http"

	"github.com/team-black-box/tici-taca-toey-server/internal/repository"
	"github.com/team-black-box/tici-taca-toey-server/pkg/handlers"
)

type health struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
	Archive bool   `json:"archive"`
}

func (that *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, health{
		Status:  "ok",
		Players: len(that.live.Roster()),
		Archive: that.archive != nil,
	})
}

// handleMatch serves a live match first and falls back to the archive.
func (that *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMatch")
	id := r.PathValue("id")

	if match, ok := that.live.Match(id); ok {
		handlers.WriteJSON(w, http.StatusOK, match)
		return
	}

	if that.archive == nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	match, err := that.archive.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}

		log.Error("failed to load archived match", "game_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, match)
}
