package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jeet1511/EliteZero/internal/api"
	"github.com/Jeet1511/EliteZero/internal/api/response"
	"github.com/Jeet1511/EliteZero/internal/factory"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/web"
)

const adminToken = "e2e-admin"

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "elitezero-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/elitezero")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runWithToken("", args...)
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	// Keep the caller's environment from leaking a token or server in
	cmd.Env = []string{"PATH=" + os.Getenv("PATH"), "HOME=" + os.Getenv("HOME")}
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.TestApp
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	app := factory.NewTestApp(nil)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		StatsEngine:    app.StatsEngine,
		History:        app.History,
		Sessions:       app.Sessions,
		Play:           app.Play,
		AdminTokenHash: string(hash),
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		StatsEngine: app.StatsEngine,
		Sessions:    app.Sessions,
		HubManager:  app.HubManager,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			app.HubManager.CloseAll()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("server did not become ready")
}

func (ts *testServer) record(t *testing.T, user model.PlayerID, game model.GameType, outcome model.Outcome, aux model.Aux) {
	t.Helper()
	_, err := ts.app.StatsEngine.RecordOutcome(context.Background(), user, game, outcome, aux)
	require.NoError(t, err)
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_StatsAndLeaderboard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	ts.record(t, "alice", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	ts.record(t, "alice", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	ts.record(t, "bob", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	ts.record(t, "bob", model.GameConnectFour, model.OutcomeLoss, model.Aux{})

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("stats", "alice")
	require.NoError(t, err, "output: %s", output)

	var stats response.UserStats
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, "alice", stats.UserID)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Games["connectfour"].Won)

	output, err = cli.run("leaderboard", "--game", "connectfour")
	require.NoError(t, err, "output: %s", output)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	assert.Equal(t, "Wins", board.ValueLabel)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].UserID)
	assert.Equal(t, "bob", board.Entries[1].UserID)

	output, err = cli.run("leaderboard", "--limit", "1")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &board))
	assert.Empty(t, board.Game)
	assert.Len(t, board.Entries, 1)
}

func TestCLI_MatchHistory(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

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

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("stats", "alice", "--matches")
	require.NoError(t, err, "output: %s", output)

	var matches []response.Match
	require.NoError(t, json.Unmarshal([]byte(output), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, string(sess.ID), matches[0].SessionID)
	assert.Equal(t, "alice", matches[0].Winner)
}

func TestCLI_SessionAdmin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	sess, _, err := ts.app.Play.StartGame(context.Background(), play.StartRequest{
		GameType: model.GameHangman,
		HostID:   "alice",
	})
	require.NoError(t, err)

	cli := newCLIRunner(t, ts.addr)

	// Without a token the admin routes refuse
	output, err := cli.run("sessions")
	require.Error(t, err)
	assert.Contains(t, output, "UNAUTHORIZED")

	output, err = cli.runWithToken(adminToken, "sessions")
	require.NoError(t, err, "output: %s", output)

	var sessions []response.Session
	require.NoError(t, json.Unmarshal([]byte(output), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, string(sess.ID), sessions[0].ID)
	assert.Equal(t, "hangman", sessions[0].GameType)

	output, err = cli.runWithToken(adminToken, "sessions", "end", string(sess.ID))
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Contains(t, msg.Message, string(sess.ID))

	// A second end finds the session already over
	output, err = cli.runWithToken(adminToken, "sessions", "end", string(sess.ID))
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_ACTIVE")

	output, err = cli.runWithToken(adminToken, "flush")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_Simulate(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("simulate", "tictactoe", "--difficulty", "impossible", "--games", "20", "--seed", "3")
	require.NoError(t, err, "output: %s", output)

	var result struct {
		Games        int `json:"games"`
		ComputerWins int `json:"computer_wins"`
		PlayerWins   int `json:"player_wins"`
		Draws        int `json:"draws"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 20, result.Games)
	assert.Zero(t, result.PlayerWins)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("stats", "nobody")
	require.Error(t, err)
	assert.Contains(t, output, "STATS_NOT_FOUND")

	output, err = cli.run("leaderboard", "--game", "chess")
	require.Error(t, err)
	assert.Contains(t, output, "UNKNOWN_GAME")

	output, err = cli.run("watch", "missing")
	require.Error(t, err)
	assert.Contains(t, output, "not found")

	output, err = cli.run("simulate", "wordle")
	require.Error(t, err)
	assert.Contains(t, output, "not supported")
}
