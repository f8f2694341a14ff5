package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/darknight08zz/protocol456/internal/api/apierr"
	"github.com/darknight08zz/protocol456/internal/api/request"
	"github.com/darknight08zz/protocol456/internal/api/response"
	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/services/game"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/services/roster"
)

// GameHandler handles the team-facing game endpoints
type GameHandler struct {
	rosterService  *roster.Service
	ledgerService  *ledger.Service
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(rosterService *roster.Service, ledgerService *ledger.Service, gameController *game.Controller) *GameHandler {
	return &GameHandler{
		rosterService:  rosterService,
		ledgerService:  ledgerService,
		gameController: gameController,
	}
}

// Join handles POST /api/round2/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	team, state, err := h.rosterService.Join(r.Context(), req.TeamName, req.Members)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinFromModel(team, state))
}

// Submit handles POST /api/round2/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.TeamID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("team_id is required"))
		return
	}

	outcome, err := h.ledgerService.SubmitChoice(
		r.Context(),
		model.TeamID(req.TeamID),
		req.RoundNumber,
		model.Choice(req.Choice),
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Submit{
		Status:      string(outcome),
		RoundNumber: req.RoundNumber,
	})
}

// RoundStatus handles GET /api/round2/rounds/{number}/status
func (h *GameHandler) RoundStatus(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Round number must be an integer"))
		return
	}

	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("team_id query parameter is required"))
		return
	}

	status, err := h.ledgerService.GetRoundStatus(r.Context(), number, model.TeamID(teamID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundStatusFromModel(status))
}

// State handles GET /api/round2/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameController.GetState(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state))
}

// Scoreboard handles GET /api/round2/scoreboard
func (h *GameHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gameController.Scoreboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreboardFromModel(entries))
}
