package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darknight08zz/protocol456/internal/api"
	"github.com/darknight08zz/protocol456/internal/api/response"
	"github.com/darknight08zz/protocol456/internal/factory"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/testutil"
)

// testServer wires the full router over in-memory storage with mocked
// clock and random
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp(ledger.Config{
		TotalTeams:         3,
		TotalRounds:        2,
		RoundTimeout:       2 * time.Minute,
		ScoreVisibleRounds: 1,
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		RosterService:  app.RosterService,
		LedgerService:  app.LedgerService,
		GameController: app.GameController,
		AdminService:   app.AdminService,
		Storage:        app.Storage,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, passphrase string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if passphrase != "" {
		req.Header.Set("X-Admin-Passphrase", passphrase)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// join registers a team and returns its ID
func (ts *testServer) join(t *testing.T, name string) string {
	t.Helper()

	body := map[string]any{"team_name": name, "members": []string{"someone"}}
	rr := ts.request(http.MethodPost, "/api/round2/join", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.TeamID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/round2/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestJoinTeam(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"team_name": "Alpha", "members": []string{"alice", "bob"}}
	rr := ts.request(http.MethodPost, "/api/round2/join", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TeamID)
	assert.Equal(t, "Alpha", resp.TeamName)
	assert.Equal(t, 1, resp.CurrentRound)
}

func TestJoinRejectsBlankName(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"team_name": "  ", "members": []string{"alice"}}
	rr := ts.request(http.MethodPost, "/api/round2/join", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestJoinRejectsDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "Alpha")

	body := map[string]any{"team_name": "Alpha", "members": []string{"carol"}}
	rr := ts.request(http.MethodPost, "/api/round2/join", body, "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NAME_TAKEN")
}

func TestJoinRejectsWhenFull(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		ts.join(t, fmt.Sprintf("Team %d", i))
	}

	body := map[string]any{"team_name": "Overflow", "members": []string{"dave"}}
	rr := ts.request(http.MethodPost, "/api/round2/join", body, "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_FULL")
}

func TestSubmitChoice(t *testing.T) {
	ts := newTestServer(t)
	teamID := ts.join(t, "Alpha")

	body := map[string]any{"team_id": teamID, "round_number": 1, "choice": "cooperate"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Submit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "submitted", resp.Status)
	assert.Equal(t, 1, resp.RoundNumber)
}

func TestSubmitChoiceIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	teamID := ts.join(t, "Alpha")

	body := map[string]any{"team_id": teamID, "round_number": 1, "choice": "cooperate"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	body["choice"] = "selfish"
	rr = ts.request(http.MethodPost, "/api/round2/submit", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Submit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "already_submitted", resp.Status)
}

func TestSubmitInvalidChoice(t *testing.T) {
	ts := newTestServer(t)
	teamID := ts.join(t, "Alpha")

	body := map[string]any{"team_id": teamID, "round_number": 1, "choice": "abstain"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CHOICE")
}

func TestSubmitWrongRound(t *testing.T) {
	ts := newTestServer(t)
	teamID := ts.join(t, "Alpha")

	body := map[string]any{"team_id": teamID, "round_number": 2, "choice": "cooperate"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_ROUND")
}

func TestSubmitUnknownTeam(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "Alpha")

	body := map[string]any{"team_id": "ghost", "round_number": 1, "choice": "cooperate"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TEAM_NOT_FOUND")
}

func TestRoundStatusWaitingThenComplete(t *testing.T) {
	ts := newTestServer(t)
	teamIDs := make([]string, 3)
	for i := range teamIDs {
		teamIDs[i] = ts.join(t, fmt.Sprintf("Team %d", i))
	}

	submit := func(teamID, choice string) {
		body := map[string]any{"team_id": teamID, "round_number": 1, "choice": choice}
		rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	submit(teamIDs[0], "selfish")

	rr := ts.request(http.MethodGet, "/api/round2/rounds/1/status?team_id="+teamIDs[0], nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var status response.RoundStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "waiting", status.Status)
	assert.Nil(t, status.PointsThisRound)

	submit(teamIDs[1], "cooperate")
	submit(teamIDs[2], "cooperate")

	rr = ts.request(http.MethodGet, "/api/round2/rounds/1/status?team_id="+teamIDs[0], nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "complete", status.Status)
	require.NotNil(t, status.PointsThisRound)
	assert.Equal(t, 15, *status.PointsThisRound)
	require.NotNil(t, status.SelfishCount)
	assert.Equal(t, 1, *status.SelfishCount)
	require.NotNil(t, status.ShowScore)
	assert.True(t, *status.ShowScore)
}

func TestRoundStatusTimeoutSettlement(t *testing.T) {
	ts := newTestServer(t)
	teamID := ts.join(t, "Alpha")
	ts.join(t, "Beta")

	body := map[string]any{"team_id": teamID, "round_number": 1, "choice": "cooperate"}
	rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Expire the round budget; the next poll settles it
	ts.app.MockClock.Advance(2 * time.Minute)

	rr = ts.request(http.MethodGet, "/api/round2/rounds/1/status?team_id="+teamID, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var status response.RoundStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "complete", status.Status)
	require.NotNil(t, status.PointsThisRound)
	assert.Equal(t, 10, *status.PointsThisRound)
}

func TestRoundStatusRequiresTeamID(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "Alpha")

	rr := ts.request(http.MethodGet, "/api/round2/rounds/1/status", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameState(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/round2/state", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var state response.GameState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, 1, state.CurrentRound)
	assert.False(t, state.Finished)
}

func TestScoreboard(t *testing.T) {
	ts := newTestServer(t)
	teamIDs := make([]string, 3)
	for i := range teamIDs {
		teamIDs[i] = ts.join(t, fmt.Sprintf("Team %d", i))
	}

	for _, id := range teamIDs {
		body := map[string]any{"team_id": id, "round_number": 1, "choice": "cooperate"}
		rr := ts.request(http.MethodPost, "/api/round2/submit", body, "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/round2/scoreboard", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var board response.Scoreboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Entries, 3)
	for _, e := range board.Entries {
		assert.Equal(t, 10, e.TotalScore)
	}
}

// Admin endpoint tests

func TestAdminRequiresPassphrase(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/round2/admin/reset", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/round2/admin/reset", nil, "wrong-passphrase")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminReset(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "Alpha")

	rr := ts.request(http.MethodPost, "/api/round2/admin/reset", nil, "test-passphrase")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Reset
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	// The name is free again after the reset
	body := map[string]any{"team_name": "Alpha", "members": []string{"alice"}}
	rr = ts.request(http.MethodPost, "/api/round2/join", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAdminTeams(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "Alpha")
	ts.join(t, "Beta")

	rr := ts.request(http.MethodGet, "/api/round2/admin/teams", nil, "test-passphrase")
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.TeamList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Teams, 2)
	assert.Equal(t, "Alpha", list.Teams[0].Name)
	assert.Equal(t, []string{"someone"}, list.Teams[0].Members)
	assert.Equal(t, 0, list.Teams[0].TotalScore)
}
