package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jeet1511/EliteZero/internal/api"
	"github.com/Jeet1511/EliteZero/internal/api/apierr"
	"github.com/Jeet1511/EliteZero/internal/api/response"
	"github.com/Jeet1511/EliteZero/internal/factory"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/testutil"
)

const adminToken = "letmein"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	app := factory.NewTestApp(nil)
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		StatsEngine:    app.StatsEngine,
		History:        app.History,
		Sessions:       app.Sessions,
		Play:           app.Play,
		AdminTokenHash: string(hash),
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) record(t *testing.T, user model.PlayerID, game model.GameType, outcome model.Outcome, aux model.Aux) {
	t.Helper()
	_, err := ts.app.StatsEngine.RecordOutcome(context.Background(), user, game, outcome, aux)
	require.NoError(t, err)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestGetUserStats(t *testing.T) {
	ts := newTestServer(t)
	ts.record(t, "alice", model.GameTicTacToe, model.OutcomeWin, model.Aux{})
	ts.record(t, "alice", model.GameTicTacToe, model.OutcomeLoss, model.Aux{})

	rr := ts.request(http.MethodGet, "/api/v1/stats/alice", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	resp := decode[response.UserStats](t, rr)
	assert.Equal(t, "alice", resp.UserID)
	assert.Equal(t, 2, resp.TotalGames)
	assert.Equal(t, 1, resp.Wins)
	assert.Equal(t, 1, resp.Losses)
	assert.InDelta(t, 50.0, resp.WinRate, 0.001)
	assert.Equal(t, 2, resp.Games["tictactoe"].Played)
	assert.NotEmpty(t, resp.Achievements)
}

func TestGetUserStatsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/stats/nobody", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	resp := decode[apierr.ErrorResponse](t, rr)
	assert.Equal(t, apierr.CodeStatsNotFound, resp.Error.Code)
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	ts.record(t, "alice", model.GameShooter, model.OutcomeComplete, model.Aux{Score: 120})
	ts.record(t, "bob", model.GameShooter, model.OutcomeComplete, model.Aux{Score: 200})

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?game=shooter", "")
	require.Equal(t, http.StatusOK, rr.Code)

	board := decode[response.Leaderboard](t, rr)
	assert.Equal(t, "shooter", board.Game)
	assert.Equal(t, "Best score", board.ValueLabel)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "bob", board.Entries[0].UserID)
	assert.Equal(t, 200, board.Entries[0].Value)
	assert.Equal(t, 2, board.Entries[1].Rank)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard?limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	overall := decode[response.Leaderboard](t, rr)
	assert.Empty(t, overall.Game)
	assert.Len(t, overall.Entries, 1)
}

func TestLeaderboardBadQuery(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		code string
	}{
		{"unknown game", "/api/v1/leaderboard?game=chess", apierr.CodeUnknownGame},
		{"zero limit", "/api/v1/leaderboard?limit=0", apierr.CodeInvalidRequest},
		{"text limit", "/api/v1/leaderboard?limit=ten", apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.code, decode[apierr.ErrorResponse](t, rr).Error.Code)
		})
	}
}

func TestListAchievements(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/achievements", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=300", rr.Header().Get("Cache-Control"))

	defs := decode[[]response.Achievement](t, rr)
	assert.Len(t, defs, len(ts.app.StatsEngine.Achievements()))
	for _, d := range defs {
		assert.NotEmpty(t, d.ID)
		assert.Positive(t, d.Points)
	}
}

func TestMatchHistory(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ts.app.MockRandom.QueueIntn(26)
	sess, _, err := ts.app.Play.StartGame(ctx, play.StartRequest{
		GameType:   model.GameNumberGuess,
		HostID:     "alice",
		Difficulty: model.DifficultyEasy,
	})
	require.NoError(t, err)
	_, err = ts.app.Play.SubmitText(ctx, "alice", "", "27")
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/v1/stats/alice/matches", "")
	require.Equal(t, http.StatusOK, rr.Code)

	matches := decode[[]response.Match](t, rr)
	require.Len(t, matches, 1)
	assert.Equal(t, string(sess.ID), matches[0].SessionID)
	assert.Equal(t, "guess", matches[0].GameType)
	assert.Equal(t, "alice", matches[0].Winner)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, token := range []string{"", "wrong"} {
		rr := ts.request(http.MethodGet, "/api/v1/sessions", token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		rr = ts.request(http.MethodPost, "/api/v1/stats/flush", token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
}

func TestAdminRoutesDisabledWithoutHash(t *testing.T) {
	app := factory.NewTestApp(nil)
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		StatsEngine: app.StatsEngine,
		History:     app.History,
		Sessions:    app.Sessions,
		Play:        app.Play,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionAdmin(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	sess, _, err := ts.app.Play.StartGame(ctx, play.StartRequest{GameType: model.GameHangman, HostID: "alice"})
	require.NoError(t, err)
	path := "/api/v1/sessions/" + string(sess.ID)

	rr := ts.request(http.MethodGet, "/api/v1/sessions", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]response.Session](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "active", list[0].State)
	assert.Equal(t, []string{"alice"}, list[0].Players)

	rr = ts.request(http.MethodDelete, path, adminToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, path, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[response.Session](t, rr)
	assert.Equal(t, "finished", got.State)
	assert.Equal(t, "abandoned", got.EndReason)

	// ending twice reports the game is over
	rr = ts.request(http.MethodDelete, path, adminToken)
	assert.Equal(t, http.StatusGone, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/sessions/missing", adminToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFlush(t *testing.T) {
	ts := newTestServer(t)
	ts.record(t, "alice", model.GameRPS, model.OutcomeDraw, model.Aux{})

	rr := ts.request(http.MethodPost, "/api/v1/stats/flush", adminToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.False(t, ts.app.StatsEngine.Dirty())
}
