package handler

import (
	"net/http"

	"github.com/darknight08zz/protocol456/internal/api/apierr"
	"github.com/darknight08zz/protocol456/internal/api/response"
	"github.com/darknight08zz/protocol456/internal/services/game"
	"github.com/darknight08zz/protocol456/internal/services/roster"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// AdminHandler handles the passphrase-gated operator endpoints
type AdminHandler struct {
	rosterService  *roster.Service
	gameController *game.Controller
	storage        storage.Storage
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(rosterService *roster.Service, gameController *game.Controller, store storage.Storage) *AdminHandler {
	return &AdminHandler{
		rosterService:  rosterService,
		gameController: gameController,
		storage:        store,
	}
}

// Reset handles POST /api/round2/admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.ResetGame(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Reset{Success: true})
}

// Teams handles GET /api/round2/admin/teams
func (h *AdminHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.rosterService.ListTeams(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	scores, err := h.storage.GetScores(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	list := response.TeamList{Teams: make([]response.Team, 0, len(teams))}
	for _, team := range teams {
		list.Teams = append(list.Teams, response.TeamFromModel(team, scores[team.ID]))
	}

	response.JSON(w, http.StatusOK, list)
}
